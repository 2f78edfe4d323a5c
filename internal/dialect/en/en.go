// Package en registers the English export dialect under the name "en".
package en

import "github.com/mind-engage/compendium/internal/dialect"

func init() {
	dialect.Register("en", New())
}

// New returns a fresh copy of the English preset.
func New() *dialect.Dialect {
	return &dialect.Dialect{
		Name:                "en",
		AnswerKeyMarker:     "KEYS AND ANSWERS FOR ALL VARIANTS",
		VariantWord:         "VARIANT",
		AnswerVariantPrefix: ">>> Variant",
		TaskWord:            "Task",
		PDFLabel:            "PDF File",
		PDFPlaceholder:      "pdf file",
		LinkWord:            "Link",
		VideoLabel:          "Video breakdown",
		CodeLabel:           "Code solution",
		VariantTitle:        "Variant %d",
		VideoTitle:          "Video breakdown of task №%s",
		CodeTitle:           "Code solution (%s)",
		AttachmentLabel:     "Variant materials",
		CompendiumTitle:     "Exam Variants Compendium (Informatics)",
		VideoProvider:       "rutube",
		DefaultPDFFormat:    "variant_%d.pdf",
	}
}
