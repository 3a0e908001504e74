// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan downloads arXiv LaTeX source archives and mines them for the
// venue template a paper was written against and for code links that do not
// appear in the abstract.
package scan

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/pdiddy/arxiv-agent/internal/httputil"
	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// srcURLBase is the arXiv source download endpoint. Declared as a var so
// tests can substitute an httptest server.
var srcURLBase = "https://arxiv.org/src"

// githubURLPattern matches the first GitHub repository URL in text.
var githubURLPattern = regexp.MustCompile(`https?://github\.com/[\w-]+/[\w.\-]+`)

const (
	defaultMaxArchiveBytes = 32 << 20
	// plainTextHead bounds how much of a non-archive response is treated
	// as LaTeX text.
	plainTextHead = 10000
)

// ErrNoSource reports that arXiv served a PDF-only or empty response for
// the paper, so there is nothing to scan.
var ErrNoSource = errors.New("no LaTeX source available")

// Result is what a source scan finds for one paper.
type Result struct {
	// Venue is the detected conference or journal, empty when unknown.
	Venue string

	// GitHubURL is a repository link found in the source, empty when none.
	GitHubURL string
}

// Inspector downloads and scans source archives with bounded concurrency.
type Inspector struct {
	HTTP *http.Client
	Cfg  types.ScanConfig

	once sync.Once
	sem  chan struct{}
}

// Inspect fetches the source archive for an arXiv ID and scans it. The
// version suffix is stripped so the latest source is fetched. Concurrent
// calls beyond Cfg.MaxConcurrent queue.
func (in *Inspector) Inspect(ctx context.Context, arxivID string) (Result, error) {
	in.once.Do(func() {
		n := in.Cfg.MaxConcurrent
		if n <= 0 {
			n = 3
		}
		in.sem = make(chan struct{}, n)
	})

	select {
	case in.sem <- struct{}{}:
		defer func() { <-in.sem }()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	content, err := in.download(ctx, stripVersion(arxivID))
	if err != nil {
		return Result{}, err
	}
	return scanArchive(content), nil
}

// download fetches the source bytes, retrying once on transport errors.
func (in *Inspector) download(ctx context.Context, id string) ([]byte, error) {
	maxBytes := in.Cfg.MaxArchiveBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxArchiveBytes
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURLBase+"/"+id, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", in.Cfg.UserAgent)

		resp, err := httputil.DoWithRetry(ctx, in.HTTP, req, 0)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		content, err := readSource(resp, maxBytes)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		return content, nil
	}
	return nil, fmt.Errorf("downloading source for %s: %w", id, lastErr)
}

func readSource(resp *http.Response, maxBytes int64) ([]byte, error) {
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoSource
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source download returned HTTP %d", resp.StatusCode)
	}
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "pdf") {
		return nil, ErrNoSource
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading source archive: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrNoSource
	}
	return content, nil
}

// scanArchive inspects source bytes in decreasing order of structure:
// gzipped tar, bare gzipped LaTeX, then plain text.
func scanArchive(content []byte) Result {
	if res, ok := scanTarGz(content); ok {
		return res
	}

	text := content
	if gz, err := gzip.NewReader(bytes.NewReader(content)); err == nil {
		if inflated, err := io.ReadAll(io.LimitReader(gz, int64(plainTextHead))); err == nil {
			text = inflated
		}
		gz.Close()
	}
	if len(text) > plainTextHead {
		text = text[:plainTextHead]
	}
	return scanText(string(text))
}

// scanTarGz walks a gzipped tar archive. Style filenames are checked first
// (cheap and unambiguous), then .tex contents. The walk stops early once
// both a venue and a code link are found.
func scanTarGz(content []byte) (Result, bool) {
	gz, err := gzip.NewReader(bytes.NewReader(content))
	if err != nil {
		return Result{}, false
	}
	defer gz.Close()

	var res Result
	sawEntry := false
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err != nil {
			// Not a tar stream at all — let the caller fall back.
			if !sawEntry {
				return Result{}, false
			}
			return res, true
		}
		sawEntry = true
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		if res.Venue == "" {
			res.Venue = detectVenueFilename(hdr.Name)
		}

		if strings.HasSuffix(hdr.Name, ".tex") {
			data, err := io.ReadAll(tr)
			if err != nil {
				continue
			}
			found := scanText(string(data))
			if res.Venue == "" {
				res.Venue = found.Venue
			}
			if res.GitHubURL == "" {
				res.GitHubURL = found.GitHubURL
			}
		}

		if res.Venue != "" && res.GitHubURL != "" {
			return res, true
		}
	}
}

// scanText checks one chunk of LaTeX text for venue signatures and GitHub
// links.
func scanText(text string) Result {
	return Result{
		Venue:     detectVenueContent(text),
		GitHubURL: githubURLPattern.FindString(text),
	}
}

// FindGitHubURL returns the first GitHub repository URL in text, or "".
func FindGitHubURL(text string) string {
	return githubURLPattern.FindString(text)
}

// stripVersion removes a trailing version suffix from an arXiv ID
// ("2301.07041v2" → "2301.07041").
func stripVersion(id string) string {
	if i := strings.LastIndex(id, "v"); i > 0 {
		allDigits := i+1 < len(id)
		for _, c := range id[i+1:] {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			return id[:i]
		}
	}
	return id
}
