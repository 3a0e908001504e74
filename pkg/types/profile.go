// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Profile describes the researcher the report is generated for. It biases
// relevance scoring and seeds derived search queries.
type Profile struct {
	// ResearchInterests is a free-form list of topics the researcher follows.
	ResearchInterests []string `json:"research_interests" yaml:"research_interests"`

	// Publications lists the researcher's representative papers.
	Publications []Publication `json:"publications" yaml:"publications"`
}

// Publication is one prior paper from the researcher profile.
type Publication struct {
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`
}

// IsEmpty reports whether the profile carries no usable signal.
func (p Profile) IsEmpty() bool {
	return len(p.ResearchInterests) == 0 && len(p.Publications) == 0
}
