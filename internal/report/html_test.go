// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

func TestRenderHTML(t *testing.T) {
	r := Report{
		Query:          "llm agents",
		Briefing:       "A busy day.\nSecond line.",
		DerivedQueries: []string{"gnn protein"},
		HasChart:       true,
		GeneratedAt:    time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC),
		Papers: []types.Paper{
			{
				ID:         "2501.00001",
				Title:      "High Scorer",
				Authors:    []string{"A", "B"},
				Abstract:   "An abstract.",
				Published:  time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
				PDFURL:     "https://arxiv.org/pdf/2501.00001",
				Score:      9,
				TLDR:       "Does a thing.",
				Topic:      "agents",
				Reasoning:  "Close to your work.",
				Venue:      "NeurIPS",
				Scanned:    true,
				SourceType: types.SourceManual,
				GitHub:     &types.GitHubRepo{URL: "https://github.com/a/b", Stars: 42, Exists: true, Hidden: true},
			},
			{
				ID:         "2501.00002",
				Title:      "Low Scorer",
				Score:      2,
				SourceType: types.SourceDerived,
			},
		},
	}

	html, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{
		"llm agents",
		"High Scorer",
		"high-score",
		"low-score",
		"Score: 9/10",
		"NeurIPS",
		"Code (found in source)",
		"42",
		"cid:trend_chart.png",
		"gnn protein",
		"A busy day.<br>Second line.",
		"AI Derived",
		">Manual<",
		"2026-08-31",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	r := Report{
		Papers: []types.Paper{{
			ID:    "1",
			Title: `<script>alert("x")</script>`,
			TLDR:  "a <b> injection",
		}},
	}
	html, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(html, `<script>alert`) {
		t.Error("title not escaped")
	}
	if strings.Contains(html, "a <b> injection") {
		t.Error("tldr not escaped")
	}
}

func TestRenderHTMLNoChart(t *testing.T) {
	html, err := RenderHTML(Report{Query: "q"})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(html, "cid:trend_chart.png") {
		t.Error("chart section should be omitted without a chart")
	}
}

func TestAuthorLine(t *testing.T) {
	if got := authorLine([]string{"A", "B"}); got != "A, B" {
		t.Errorf("got %q", got)
	}
	got := authorLine([]string{"A", "B", "C", "D", "E", "F"})
	if got != "A, B, C, D, E..." {
		t.Errorf("six authors should truncate, got %q", got)
	}
}

func TestVenueColor(t *testing.T) {
	if venueColor("NeurIPS") == venueColor("unknown venue") {
		t.Error("known venue should not use the fallback color")
	}
	if venueColor("Springer (LNCS)") != "#6f42c1" {
		t.Errorf("unmapped venue should use the fallback, got %q", venueColor("Springer (LNCS)"))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.EmailConfig
		wantErr string
	}{
		{"complete", types.EmailConfig{Sender: "a@b", Password: "p", Recipient: "c@d"}, ""},
		{"no sender", types.EmailConfig{Password: "p", Recipient: "c@d"}, "SENDER_EMAIL"},
		{"no password", types.EmailConfig{Sender: "a@b", Recipient: "c@d"}, "SENDER_PASSWORD"},
		{"no recipient", types.EmailConfig{Sender: "a@b", Password: "p"}, "RECIPIENT_EMAIL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sender{Cfg: tt.cfg}
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
