// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// Chatter is the LLM surface derive needs: one prompt in, one JSON
// completion out. Satisfied by the analysis package's OpenAI client.
type Chatter interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// maxDerivedQueries caps how many expansion queries a profile yields.
const maxDerivedQueries = 3

// derivePromptTmpl asks the model for arXiv query strings that would surface
// papers citing or extending the researcher's work.
var derivePromptTmpl = template.Must(template.New("derive").Parse(`Researcher profile:

Interests:
{{.Interests}}

Representative publications:
{{.Publications}}

Generate {{.Max}} arXiv search query strings in English. The goal is to find
new papers that might cite this researcher's work or are closely related in
methodology. Do not simply repeat the interest terms; combine them (e.g.
"GNN AND protein").

Respond with a JSON object containing a "queries" array of strings. Do not
include any text outside the JSON object.

Example response:
{"queries": ["graph neural network protein folding", "state space model long context"]}
`))

// DeriveQueries asks the LLM for up to three search queries grounded in the
// profile. An empty profile yields no queries and no API call.
func DeriveQueries(ctx context.Context, chatter Chatter, p types.Profile, extraInterest string) ([]string, error) {
	if p.IsEmpty() {
		return nil, nil
	}

	var buf bytes.Buffer
	err := derivePromptTmpl.Execute(&buf, struct {
		Interests    string
		Publications string
		Max          int
	}{
		Interests:    InterestsContext(p, extraInterest),
		Publications: PublicationsContext(p),
		Max:          maxDerivedQueries,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering derive prompt: %w", err)
	}

	raw, err := chatter.CompleteJSON(ctx, "", buf.String())
	if err != nil {
		return nil, fmt.Errorf("deriving queries: %w", err)
	}

	queries, err := parseDerivedQueries(raw)
	if err != nil {
		return nil, err
	}
	if len(queries) > maxDerivedQueries {
		queries = queries[:maxDerivedQueries]
	}
	return queries, nil
}

// parseDerivedQueries accepts either {"queries": [...]} or, for lenient
// models, any JSON object whose first array-valued key holds strings, or a
// bare JSON array.
func parseDerivedQueries(raw string) ([]string, error) {
	var bare []string
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return bare, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("parsing derived queries: %w", err)
	}

	if v, ok := obj["queries"]; ok {
		var queries []string
		if err := json.Unmarshal(v, &queries); err != nil {
			return nil, fmt.Errorf("parsing derived queries: %w", err)
		}
		return queries, nil
	}

	for _, v := range obj {
		var queries []string
		if err := json.Unmarshal(v, &queries); err == nil && len(queries) > 0 {
			return queries, nil
		}
	}

	return nil, fmt.Errorf("no query list in LLM response")
}
