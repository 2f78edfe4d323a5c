// Package ru registers the Russian export dialect (the original "sbornik" export)
// under the name "ru".
package ru

import "github.com/mind-engage/compendium/internal/dialect"

func init() {
	dialect.Register("ru", New())
}

// New returns a fresh copy of the Russian preset.
func New() *dialect.Dialect {
	return &dialect.Dialect{
		Name:                "ru",
		AnswerKeyMarker:     "КЛЮЧИ И ОТВЕТЫ КО ВСЕМ ВАРИАНТАМ",
		VariantWord:         "ВАРИАНТ",
		AnswerVariantPrefix: ">>> Вариант",
		TaskWord:            "Задание",
		PDFLabel:            "PDF Файл",
		PDFPlaceholder:      "pdf файл",
		LinkWord:            "Ссылка",
		VideoLabel:          "Видеоразбор",
		CodeLabel:           "Код решения",
		VariantTitle:        "Вариант %d",
		VideoTitle:          "Видеоразбор задания №%s",
		CodeTitle:           "Код решения (%s)",
		AttachmentLabel:     "Материалы к варианту",
		CompendiumTitle:     "Сборник вариантов ЕГЭ (Информатика)",
		VideoProvider:       "rutube",
		DefaultPDFFormat:    "variant_%d.pdf",
	}
}
