// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import "regexp"

// venueSignature pairs a LaTeX fingerprint with the venue it identifies.
// Order matters: more specific patterns come first, text fallbacks last.
type venueSignature struct {
	re    *regexp.Regexp
	venue string
}

// contentSignatures match venue template usage inside .tex sources.
var contentSignatures = []venueSignature{
	{regexp.MustCompile(`(?i)\\usepackage.*\{cvpr\}`), "CVPR"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{iccv\}`), "ICCV"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{eccv\}`), "ECCV"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{neurips\d*\}`), "NeurIPS"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{nips\d*\}`), "NeurIPS"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{iclr\d*.*\}`), "ICLR"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{aaai\d*\}`), "AAAI"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{acl\d*\}`), "ACL"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{naacl\d*\}`), "NAACL"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{emnlp\d*\}`), "EMNLP"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{icml\d*.*\}`), "ICML"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{jmlr\}`), "JMLR"},
	{regexp.MustCompile(`(?i)\\usepackage.*\{spconf\}`), "ICASSP"},
	{regexp.MustCompile(`(?i)\\documentclass.*\{acmart\}`), "ACM"},
	{regexp.MustCompile(`(?i)\\documentclass.*\{IEEEtran\}`), "IEEE"},
	{regexp.MustCompile(`(?i)\\documentclass.*\{nature\}`), "Nature"},
	{regexp.MustCompile(`(?i)\\documentclass.*\{llncs\}`), "Springer (LNCS)"},
	// Text fallbacks for papers that state the target venue outright.
	{regexp.MustCompile(`(?i)Submitted to.*CVPR`), "CVPR"},
	{regexp.MustCompile(`(?i)Submitted to.*ICCV`), "ICCV"},
	{regexp.MustCompile(`(?i)Submitted to.*ECCV`), "ECCV"},
	{regexp.MustCompile(`(?i)Submitted to.*NeurIPS`), "NeurIPS"},
	{regexp.MustCompile(`(?i)Submitted to.*ICLR`), "ICLR"},
}

// filenameSignatures match venue style files by name (e.g. "neurips_style.sty").
var filenameSignatures = []venueSignature{
	{regexp.MustCompile(`(?i)nips[_\-]?style\.sty$`), "NeurIPS"},
	{regexp.MustCompile(`(?i)neurips[_\-]?style\.sty$`), "NeurIPS"},
	{regexp.MustCompile(`(?i)neurips_\d+\.sty$`), "NeurIPS"},
	{regexp.MustCompile(`(?i)iclr\d*.*\.sty$`), "ICLR"},
	{regexp.MustCompile(`(?i)cvpr\.sty$`), "CVPR"},
	{regexp.MustCompile(`(?i)iccv\.sty$`), "ICCV"},
	{regexp.MustCompile(`(?i)aaai\d*\.sty$`), "AAAI"},
	{regexp.MustCompile(`(?i)acl\.sty$`), "ACL"},
	{regexp.MustCompile(`(?i)naacl\.sty$`), "NAACL"},
	{regexp.MustCompile(`(?i)emnlp\.sty$`), "EMNLP"},
	{regexp.MustCompile(`(?i)icml\d*\.sty$`), "ICML"},
}

// detectVenueContent returns the venue implied by a chunk of LaTeX text,
// or "" when no signature matches.
func detectVenueContent(text string) string {
	for _, sig := range contentSignatures {
		if sig.re.MatchString(text) {
			return sig.venue
		}
	}
	return ""
}

// detectVenueFilename returns the venue implied by a style filename, or "".
func detectVenueFilename(name string) string {
	for _, sig := range filenameSignatures {
		if sig.re.MatchString(name) {
			return sig.venue
		}
	}
	return ""
}
