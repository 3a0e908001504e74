// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"fmt"
	"text/template"
)

// scoringPromptTmpl is the system prompt sent for each paper. It instructs
// the model to score relevance against the researcher profile and return a
// fixed JSON shape.
var scoringPromptTmpl = template.Must(template.New("scoring").Parse(`You are a research assistant screening new arXiv papers for one researcher.

Researcher interests:
{{.Interests}}

Representative publications:
{{.Publications}}

Read the paper title and abstract you are given and perform these tasks:

1. score: rate relevance to the researcher on an integer scale of 0-10.
   Compare the paper against the representative publications: papers that
   cite similar methods, solve open problems from those publications, or sit
   on the same technical trajectory score higher.
2. tldr: one sentence, in {{.Language}}, stating the core contribution.
3. topic: a short phrase naming the paper's subject (e.g. "graph neural
   networks", "multimodal learning").
4. reasoning: a brief justification of the score, in {{.Language}}. When the
   paper relates to a representative publication, say which one and how.

Respond with a JSON object containing exactly the fields "score" (integer),
"tldr" (string), "topic" (string), and "reasoning" (string). Do not include
any text outside the JSON object.

Example response:
{"score": 8, "tldr": "Introduces a linear-time attention variant for long documents.", "topic": "efficient transformers", "reasoning": "Directly extends the sparse attention line of work in the researcher's 2023 paper."}
`))

// briefingPromptTmpl produces the report's opening digest from the day's
// trend numbers and the top-ranked papers.
var briefingPromptTmpl = template.Must(template.New("briefing").Parse(`You are a research intelligence analyst writing a short morning digest.

Today's arXiv submission distribution (sampled): {{.Trend}}

Top papers selected for the reader:
{{.Papers}}

Write one compact paragraph in {{.Language}}:
1. Open with a sentence on the macro picture (which subfield is most active today).
2. Then summarize what is new in the reader's own areas.
Keep it terse and professional.
`))

type promptContext struct {
	Interests    string
	Publications string
	Language     string
}

// renderScoringPrompt executes the scoring template for the given profile
// context.
func renderScoringPrompt(pc promptContext) (string, error) {
	if pc.Language == "" {
		pc.Language = "English"
	}
	var buf bytes.Buffer
	if err := scoringPromptTmpl.Execute(&buf, pc); err != nil {
		return "", fmt.Errorf("rendering scoring prompt: %w", err)
	}
	return buf.String(), nil
}

// renderBriefingPrompt executes the briefing template.
func renderBriefingPrompt(trend, papers, language string) (string, error) {
	if language == "" {
		language = "English"
	}
	var buf bytes.Buffer
	err := briefingPromptTmpl.Execute(&buf, struct {
		Trend    string
		Papers   string
		Language string
	}{Trend: trend, Papers: papers, Language: language})
	if err != nil {
		return "", fmt.Errorf("rendering briefing prompt: %w", err)
	}
	return buf.String(), nil
}
