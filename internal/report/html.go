// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the HTML report and delivers it over SMTP.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// ChartCID is the Content-ID filename for the inline trend chart. The
// template references it as cid:trend_chart.png.
const ChartCID = "trend_chart.png"

// Report carries everything the HTML template needs.
type Report struct {
	Query          string
	Papers         []types.Paper
	Briefing       string
	DerivedQueries []string
	HasChart       bool
	GeneratedAt    time.Time
}

// Score bands for card styling, following the report's traffic-light
// convention: high is a strong match, low is probably noise.
const (
	highScore = 8
	medScore  = 5
)

var funcMap = template.FuncMap{
	"scoreClass": func(score int) string {
		switch {
		case score >= highScore:
			return "high-score"
		case score >= medScore:
			return "med-score"
		default:
			return "low-score"
		}
	},
	"scoreColor": func(score int) string {
		switch {
		case score >= highScore:
			return "#28a745"
		case score >= medScore:
			return "#ffc107"
		default:
			return "#dc3545"
		}
	},
	"venueColor": venueColor,
	"authorLine": authorLine,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"stars": func(r *types.GitHubRepo) string {
		if r == nil || r.Stars < 0 {
			return "N/A"
		}
		return fmt.Sprintf("%d", r.Stars)
	},
	"nl2br": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
}

// venueColor picks the badge color for a detected venue.
func venueColor(venue string) string {
	switch {
	case strings.Contains(venue, "CVPR"), strings.Contains(venue, "ACM"):
		return "#0366d6"
	case strings.Contains(venue, "NeurIPS"):
		return "#b60205"
	case strings.Contains(venue, "ICLR"):
		return "#d9534f"
	case strings.Contains(venue, "ICCV"):
		return "#28a745"
	case strings.Contains(venue, "ECCV"):
		return "#17a2b8"
	case strings.Contains(venue, "AAAI"):
		return "#ffc107"
	case strings.Contains(venue, "ACL"), strings.Contains(venue, "NAACL"), strings.Contains(venue, "EMNLP"):
		return "#dc3545"
	case strings.Contains(venue, "IEEE"):
		return "#00629b"
	case strings.Contains(venue, "ICML"):
		return "#e83e8c"
	case strings.Contains(venue, "JMLR"):
		return "#20c997"
	default:
		return "#6f42c1"
	}
}

// authorLine formats up to five authors for the card meta line.
func authorLine(authors []string) string {
	if len(authors) <= 5 {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:5], ", ") + "..."
}

var reportTmpl = template.Must(template.New("report").Funcs(funcMap).Parse(`<html>
<head>
<style>
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 800px; margin: 0 auto; padding: 20px; }
  .header { background-color: #f8f9fa; padding: 20px; border-bottom: 3px solid #0056b3; margin-bottom: 20px; }
  .paper-card { border: 1px solid #e0e0e0; border-radius: 8px; padding: 20px; margin-bottom: 20px; box-shadow: 0 2px 4px rgba(0,0,0,0.05); }
  .high-score { border-left: 5px solid #28a745; background-color: #fcffff; }
  .med-score { border-left: 5px solid #ffc107; }
  .low-score { border-left: 5px solid #dc3545; opacity: 0.9; }
  .title { color: #0056b3; text-decoration: none; font-size: 18px; font-weight: bold; }
  .meta { font-size: 12px; color: #666; margin-bottom: 10px; }
  .score-badge { display: inline-block; padding: 2px 8px; border-radius: 4px; color: white; font-weight: bold; font-size: 12px; margin-right: 10px; }
  .badge { display: inline-block; padding: 2px 6px; border-radius: 4px; font-size: 11px; margin-right: 5px; }
  .tldr { background-color: #eef2f7; padding: 10px; border-radius: 4px; font-style: italic; margin: 10px 0; border-left: 3px solid #0056b3; }
  .abstract { font-size: 14px; text-align: justify; }
  .footer { text-align: center; font-size: 12px; color: #999; margin-top: 30px; }
  .briefing { background-color: #f9f9f9; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h2>arXiv Agent Report</h2>
    <p>Search query: <strong>{{.Query}}</strong> | Found: {{len .Papers}} papers</p>
    <p style="font-size:12px; color:#666;">Papers sorted by relevance score | Venue detection enabled</p>
  </div>

  {{if .Briefing}}
  <div class="briefing">
    <h3>Briefing</h3>
    <p>{{nl2br .Briefing}}</p>
    {{if .DerivedQueries}}
    <div style="margin-top:10px; font-size:12px; color:#586069; border-top:1px solid #e1e4e8; padding-top:10px;">
      <b>Auto-expanded search:</b>
      {{range .DerivedQueries}}<code style="margin-right:6px;">{{.}}</code>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .HasChart}}
  <div style="text-align:center; margin:20px 0;">
    <h3>Global Category Trends (Today)</h3>
    <img src="cid:trend_chart.png" style="max-width:100%; border:1px solid #eee; border-radius:8px;" alt="category trend chart">
    <p style="font-size:12px; color:#999;">Statistics based on broad field sampling</p>
  </div>
  {{end}}

  {{range .Papers}}
  <div class="paper-card {{scoreClass .Score}}">
    <div style="margin-bottom: 8px;">
      <span class="score-badge" style="background-color: {{scoreColor .Score}};">Score: {{.Score}}/10</span>
      {{if eq .SourceType "manual"}}<span class="badge" style="background:#e1ecf4; color:#39739d; border:1px solid rgba(0,0,0,0.1);">Manual</span>
      {{else}}<span class="badge" style="background:#f0f4c3; color:#827717; border:1px solid rgba(0,0,0,0.1);">AI Derived</span>{{end}}
      {{if .Venue}}<span class="badge" style="background:{{venueColor .Venue}}; color:white; font-weight:bold;" title="Detected via LaTeX source">{{.Venue}}</span>
      {{else if .Scanned}}<span class="badge" style="background:#f0f0f0; color:#666;" title="Source scanned but no template detected">Scanned</span>{{end}}
      {{with .GitHub}}<span class="badge" style="background:{{if .Hidden}}#2ea44f{{else}}#0366d6{{end}}; color:white;" title="{{.URL}}">{{if .Hidden}}Code (found in source){{else}}Code (in abstract){{end}} | &#9733; {{stars .}}</span>{{end}}
      <span style="color:#666; font-size:12px; float:right;">{{date .Published}}</span>
    </div>
    <a href="{{.PDFURL}}" class="title">{{.Title}}</a>
    <div class="meta">
      <strong>ID:</strong> {{.ID}} | <strong>Topic:</strong> {{.Topic}}<br>
      <strong>Authors:</strong> {{authorLine .Authors}}
    </div>
    {{if .TLDR}}
    <div class="tldr"><strong>TL;DR:</strong> {{.TLDR}}</div>
    {{end}}
    {{if .Reasoning}}
    <div class="meta"><strong>Why:</strong> {{.Reasoning}}</div>
    {{end}}
    <div class="abstract">
      <details>
        <summary style="cursor: pointer; color: #0056b3;">Read abstract</summary>
        <p>{{nl2br .Abstract}}</p>
      </details>
    </div>
  </div>
  {{end}}

  <div class="footer">
    Generated by arxiv-agent on {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}
  </div>
</div>
</body>
</html>
`))

// RenderHTML produces the report body. All paper fields pass through
// html/template's contextual escaping.
func RenderHTML(r Report) (string, error) {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}
	var b strings.Builder
	if err := reportTmpl.Execute(&b, r); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}
