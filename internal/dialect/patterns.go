package dialect

import (
	"regexp"
	"strings"
)

// Patterns are the compiled matchers derived from a Dialect.
type Patterns struct {
	// VariantHeader matches the three-line "#####\nVARIANT N\n#####" header; group 1 is N.
	VariantHeader *regexp.Regexp
	// AnswerSection matches ">>> Variant N" in the answer key; group 1 is N.
	AnswerSection *regexp.Regexp
	// TaskHeader matches "Task №K: value" at the start of a trimmed line.
	TaskHeader *regexp.Regexp
	// PrimaryDocument matches "[PDF File]: name\nLink: url".
	PrimaryDocument *regexp.Regexp
	// Attachment matches "-> name (url)".
	Attachment *regexp.Regexp
	// Video matches "[Video breakdown]: Task №K ...\nLink: url".
	Video *regexp.Regexp
	// Code matches "[Code solution (caption)]:" followed by a dash-fenced block.
	Code *regexp.Regexp

	placeholder string
}

func compile(d *Dialect) *Patterns {
	q := regexp.QuoteMeta
	return &Patterns{
		VariantHeader:   regexp.MustCompile(`#{10,}\s*\n` + q(d.VariantWord) + `\s+(\d+)\s*\n#{10,}`),
		AnswerSection:   regexp.MustCompile(q(d.AnswerVariantPrefix) + `\s+(\d+)`),
		TaskHeader:      regexp.MustCompile(`^` + q(d.TaskWord) + `\s*№(\d+):\s*(.*)`),
		PrimaryDocument: regexp.MustCompile(`\[` + q(d.PDFLabel) + `\]:\s*(.*?)\n` + q(d.LinkWord) + `:\s*(.*)`),
		Attachment:      regexp.MustCompile(`->\s*(.*?)\s*\((.*?)\)`),
		Video:           regexp.MustCompile(`\[` + q(d.VideoLabel) + `\]:\s*` + q(d.TaskWord) + `\s*№?(\d+).*?\n` + q(d.LinkWord) + `:\s*(.*)`),
		Code:            regexp.MustCompile(`(?s)\[` + q(d.CodeLabel) + ` \((.*?)\)\]:\s*\n-{10,}\n(.*?)\n-{10,}`),
		placeholder:     strings.ToLower(strings.TrimSpace(d.PDFPlaceholder)),
	}
}

// IsPlaceholder reports whether a captured filename is the dialect's stand-in text.
func (p *Patterns) IsPlaceholder(name string) bool {
	return p.placeholder != "" && strings.ToLower(name) == p.placeholder
}
