// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/arxiv-agent/internal/httputil"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// githubAPIBase is the GitHub REST endpoint. Declared as a var so tests can
// substitute an httptest server.
var githubAPIBase = "https://api.github.com"

// Auditor checks whether a linked repository actually exists and how alive
// it looks.
type Auditor struct {
	HTTP      *http.Client
	UserAgent string
}

// repoResponse is the subset of the GitHub repos API the audit reads.
type repoResponse struct {
	StargazersCount int    `json:"stargazers_count"`
	PushedAt        string `json:"pushed_at"`
}

// Audit queries the GitHub API for the repository behind url. A repository
// that cannot be confirmed (404, network failure) still yields a record —
// the link itself is worth reporting — with Exists false and Stars -1.
func (a *Auditor) Audit(ctx context.Context, url string) *types.GitHubRepo {
	repo := &types.GitHubRepo{URL: url, Stars: -1}

	path := repoPath(url)
	if path == "" {
		return repo
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubAPIBase+"/repos/"+path, nil)
	if err != nil {
		return repo
	}
	req.Header.Set("User-Agent", a.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httputil.DoWithRetry(ctx, a.HTTP, req, 0)
	if err != nil {
		return repo
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return repo
	}

	var rr repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return repo
	}

	repo.Exists = true
	repo.Stars = rr.StargazersCount
	if t, err := time.Parse(time.RFC3339, rr.PushedAt); err == nil {
		repo.PushedAt = t
	}
	return repo
}

// repoPath extracts "owner/name" from a GitHub URL, trimming anything past
// the repository segment.
func repoPath(url string) string {
	const marker = "github.com/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	parts := strings.Split(strings.Trim(url[i+len(marker):], "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + strings.TrimSuffix(parts[1], ".git")
}

// Annotate runs the source scan for each paper and resolves its code link.
// A link in the abstract wins over one mined from the source; the latter is
// flagged hidden. Scan failures leave the paper unannotated and never fail
// the batch; the Inspector's semaphore bounds download concurrency.
func Annotate(ctx context.Context, in *Inspector, auditor *Auditor, papers []types.Paper) []types.Paper {
	var wg sync.WaitGroup
	out := make([]types.Paper, len(papers))

	for i, p := range papers {
		wg.Add(1)
		go func(i int, p types.Paper) {
			defer wg.Done()

			res, err := in.Inspect(ctx, p.ID)
			if err == nil {
				p.Scanned = true
				p.Venue = res.Venue
			}

			abstractURL := FindGitHubURL(p.Abstract)
			switch {
			case abstractURL != "":
				p.GitHub = auditor.Audit(ctx, abstractURL)
			case res.GitHubURL != "":
				p.GitHub = auditor.Audit(ctx, res.GitHubURL)
				p.GitHub.Hidden = true
			}

			out[i] = p
		}(i, p)
	}
	wg.Wait()
	return out
}
