package compendium

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mind-engage/compendium/internal/dialect"
)

// Kinds written into materials.
const (
	DocumentPDF    = "pdf"
	AttachmentZIP  = "zip"
	LanguagePython = "python"
	LanguageText   = "text"
)

// ExtractMainDocument returns the first primary-document match in a span. The
// filename is normalized to end in ".pdf"; empty or placeholder names become
// the dialect's default name for the variant number.
func ExtractMainDocument(d *dialect.Dialect, number int, span string) (Document, bool) {
	p := d.Patterns()
	m := p.PrimaryDocument.FindStringSubmatch(span)
	if m == nil {
		return Document{}, false
	}
	return Document{
		Type:     DocumentPDF,
		Filename: NormalizePDFName(d, number, m[1]),
		URL:      strings.TrimSpace(m[2]),
	}, true
}

// NormalizePDFName applies the primary-document filename rules.
func NormalizePDFName(d *dialect.Dialect, number int, captured string) string {
	name := strings.TrimSpace(captured)
	if name == "" || d.Patterns().IsPlaceholder(name) {
		name = fmt.Sprintf(d.DefaultPDFFormat, number)
	}
	if !strings.HasSuffix(name, ".pdf") {
		name += ".pdf"
	}
	return name
}

func ExtractAttachments(d *dialect.Dialect, span string) []Attachment {
	out := []Attachment{}
	for _, m := range d.Patterns().Attachment.FindAllStringSubmatch(span, -1) {
		out = append(out, Attachment{
			Type:     AttachmentZIP,
			Label:    d.AttachmentLabel,
			Filename: strings.TrimSpace(m[1]),
			URL:      strings.TrimSpace(m[2]),
		})
	}
	return out
}

func ExtractVideos(d *dialect.Dialect, span string) []Solution {
	var out []Solution
	for _, m := range d.Patterns().Video.FindAllStringSubmatch(span, -1) {
		task, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, Solution{
			TaskNumber: task,
			Type:       SolutionVideo,
			TaskSource: TaskExplicit,
			Content: SolutionContent{
				Provider: d.VideoProvider,
				URL:      strings.TrimSpace(m[2]),
				Title:    fmt.Sprintf(d.VideoTitle, m[1]),
			},
		})
	}
	return out
}

// CodeBlock is one fenced code solution before its task number is known.
type CodeBlock struct {
	Caption string
	Body    string
}

func (c CodeBlock) Language() string {
	if strings.Contains(strings.ToLower(c.Caption), "python") {
		return LanguagePython
	}
	return LanguageText
}

func ExtractCodeBlocks(d *dialect.Dialect, span string) []CodeBlock {
	var out []CodeBlock
	for _, m := range d.Patterns().Code.FindAllStringSubmatch(span, -1) {
		out = append(out, CodeBlock{Caption: m[1], Body: strings.TrimSpace(m[2])})
	}
	return out
}

// ExtractCode resolves a task number for every code block in the span.
func ExtractCode(d *dialect.Dialect, r TaskResolver, span string) []Solution {
	var out []Solution
	for _, cb := range ExtractCodeBlocks(d, span) {
		res := r.Resolve(cb.Body)
		out = append(out, Solution{
			TaskNumber:  res.Task,
			Type:        SolutionCode,
			TaskSource:  res.Source,
			MatchedRule: res.Rule,
			Content: SolutionContent{
				Language: cb.Language(),
				Title:    fmt.Sprintf(d.CodeTitle, cb.Caption),
				Snippet:  cb.Body,
			},
		})
	}
	return out
}
