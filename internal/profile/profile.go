// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile loads the researcher profile and expands it into derived
// search queries.
package profile

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// Load reads a profile file. Both YAML and JSON files parse (JSON is valid
// YAML). A missing file is not an error: the agent degrades to
// keyword-only search, so Load returns an empty profile.
func Load(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Profile{}, nil
		}
		return types.Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var p types.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return types.Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

// InterestsContext formats the research interests as a bulleted list for
// prompt interpolation. The free-form interest string from config is
// appended when set.
func InterestsContext(p types.Profile, extra string) string {
	var b strings.Builder
	for _, i := range p.ResearchInterests {
		fmt.Fprintf(&b, "- %s\n", i)
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		fmt.Fprintf(&b, "- %s\n", extra)
	}
	return strings.TrimRight(b.String(), "\n")
}

// abstractContextLimit caps how much of each publication abstract goes into
// the prompt.
const abstractContextLimit = 200

// PublicationsContext formats the researcher's publications for prompt
// interpolation.
func PublicationsContext(p types.Profile) string {
	if len(p.Publications) == 0 {
		return "No prior publications on record."
	}
	var b strings.Builder
	for _, pub := range p.Publications {
		abstract := pub.Abstract
		if len(abstract) > abstractContextLimit {
			abstract = abstract[:abstractContextLimit] + "..."
		}
		fmt.Fprintf(&b, "- Title: %s\n  Abstract: %s\n", pub.Title, abstract)
	}
	return strings.TrimRight(b.String(), "\n")
}
