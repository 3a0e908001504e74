// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRepoPath(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "https://github.com/owner/repo", "owner/repo"},
		{"trailing slash", "https://github.com/owner/repo/", "owner/repo"},
		{"deep path", "https://github.com/owner/repo/tree/main/src", "owner/repo"},
		{"git suffix", "https://github.com/owner/repo.git", "owner/repo"},
		{"owner only", "https://github.com/owner", ""},
		{"not github", "https://gitlab.com/owner/repo", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repoPath(tt.url); got != tt.want {
				t.Errorf("repoPath(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestAudit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"stargazers_count": 128, "pushed_at": "2026-07-15T09:30:00Z"}`))
	}))
	defer ts.Close()

	orig := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = orig }()

	a := &Auditor{HTTP: ts.Client()}
	repo := a.Audit(context.Background(), "https://github.com/owner/repo")

	if !repo.Exists {
		t.Fatal("repo should be confirmed")
	}
	if repo.Stars != 128 {
		t.Errorf("stars = %d, want 128", repo.Stars)
	}
	want := time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC)
	if !repo.PushedAt.Equal(want) {
		t.Errorf("pushed at = %v, want %v", repo.PushedAt, want)
	}
}

func TestAuditUnconfirmed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	orig := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = orig }()

	a := &Auditor{HTTP: ts.Client()}
	repo := a.Audit(context.Background(), "https://github.com/gone/repo")

	if repo == nil {
		t.Fatal("Audit must never return nil")
	}
	if repo.Exists {
		t.Error("404 repo should not be marked existing")
	}
	if repo.Stars != -1 {
		t.Errorf("stars = %d, want -1 for unknown", repo.Stars)
	}
	if repo.URL != "https://github.com/gone/repo" {
		t.Errorf("the link itself should be kept: %q", repo.URL)
	}
}

func TestAuditBadURL(t *testing.T) {
	a := &Auditor{HTTP: http.DefaultClient}
	repo := a.Audit(context.Background(), "https://example.com/nothing")
	if repo.Exists || repo.Stars != -1 {
		t.Errorf("unparseable URL should stay unconfirmed: %+v", repo)
	}
}
