// Package dialect describes the literal markers of one compendium export format.
//
// The extraction engine never hard-codes marker text; it asks a Dialect for its
// compiled Patterns. Presets live in subpackages (en, ru) and register themselves
// at init, the same way format adapters do.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknown is returned by Get when no dialect is registered under a name.
var ErrUnknown = errors.New("unknown dialect")

// Dialect holds every marker and generated text for one export language.
type Dialect struct {
	Name string `yaml:"name"`

	// Structural markers (input side).
	AnswerKeyMarker     string `yaml:"answer_key_marker"`     // splits body from answer key
	VariantWord         string `yaml:"variant_word"`          // "VARIANT" in the ### header
	AnswerVariantPrefix string `yaml:"answer_variant_prefix"` // ">>> Variant"
	TaskWord            string `yaml:"task_word"`             // "Task" in "Task №K:"
	PDFLabel            string `yaml:"pdf_label"`
	PDFPlaceholder      string `yaml:"pdf_placeholder"` // compared case-insensitively
	LinkWord            string `yaml:"link_word"`
	VideoLabel          string `yaml:"video_label"`
	CodeLabel           string `yaml:"code_label"`

	// Generated texts (output side).
	VariantTitle     string `yaml:"variant_title"` // fmt with %d
	VideoTitle       string `yaml:"video_title"`   // fmt with %s, the task digits as written
	CodeTitle        string `yaml:"code_title"`    // fmt with %s
	AttachmentLabel  string `yaml:"attachment_label"`
	CompendiumTitle  string `yaml:"compendium_title"`
	VideoProvider    string `yaml:"video_provider"`
	DefaultPDFFormat string `yaml:"default_pdf_format"` // fmt with %d

	once     sync.Once
	patterns *Patterns
}

// Validate rejects dialects whose structural markers are empty.
func (d *Dialect) Validate() error {
	if d == nil {
		return errors.New("dialect is required")
	}
	required := map[string]string{
		"answer_key_marker":     d.AnswerKeyMarker,
		"variant_word":          d.VariantWord,
		"answer_variant_prefix": d.AnswerVariantPrefix,
		"task_word":             d.TaskWord,
		"pdf_label":             d.PDFLabel,
		"link_word":             d.LinkWord,
		"video_label":           d.VideoLabel,
		"code_label":            d.CodeLabel,
	}
	keys := make([]string, 0, len(required))
	for k := range required {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(required[k]) == "" {
			return fmt.Errorf("dialect %q: %s is required", d.Name, k)
		}
	}
	for k, f := range map[string]string{"variant_title": d.VariantTitle, "default_pdf_format": d.DefaultPDFFormat} {
		if f != "" && !strings.Contains(f, "%d") {
			return fmt.Errorf("dialect %q: %s must contain %%d", d.Name, k)
		}
	}
	for k, f := range map[string]string{"video_title": d.VideoTitle, "code_title": d.CodeTitle} {
		if f != "" && !strings.Contains(f, "%s") {
			return fmt.Errorf("dialect %q: %s must contain %%s", d.Name, k)
		}
	}
	return nil
}

// Patterns compiles (once) and returns the dialect's regular expressions.
func (d *Dialect) Patterns() *Patterns {
	d.once.Do(func() { d.patterns = compile(d) })
	return d.patterns
}

// Clone returns a copy without the compiled pattern cache.
func (d *Dialect) Clone() *Dialect {
	return &Dialect{
		Name:                d.Name,
		AnswerKeyMarker:     d.AnswerKeyMarker,
		VariantWord:         d.VariantWord,
		AnswerVariantPrefix: d.AnswerVariantPrefix,
		TaskWord:            d.TaskWord,
		PDFLabel:            d.PDFLabel,
		PDFPlaceholder:      d.PDFPlaceholder,
		LinkWord:            d.LinkWord,
		VideoLabel:          d.VideoLabel,
		CodeLabel:           d.CodeLabel,
		VariantTitle:        d.VariantTitle,
		VideoTitle:          d.VideoTitle,
		CodeTitle:           d.CodeTitle,
		AttachmentLabel:     d.AttachmentLabel,
		CompendiumTitle:     d.CompendiumTitle,
		VideoProvider:       d.VideoProvider,
		DefaultPDFFormat:    d.DefaultPDFFormat,
	}
}

// fillFrom copies every empty field of d from base.
func (d *Dialect) fillFrom(base *Dialect) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&d.AnswerKeyMarker, base.AnswerKeyMarker)
	fill(&d.VariantWord, base.VariantWord)
	fill(&d.AnswerVariantPrefix, base.AnswerVariantPrefix)
	fill(&d.TaskWord, base.TaskWord)
	fill(&d.PDFLabel, base.PDFLabel)
	fill(&d.PDFPlaceholder, base.PDFPlaceholder)
	fill(&d.LinkWord, base.LinkWord)
	fill(&d.VideoLabel, base.VideoLabel)
	fill(&d.CodeLabel, base.CodeLabel)
	fill(&d.VariantTitle, base.VariantTitle)
	fill(&d.VideoTitle, base.VideoTitle)
	fill(&d.CodeTitle, base.CodeTitle)
	fill(&d.AttachmentLabel, base.AttachmentLabel)
	fill(&d.CompendiumTitle, base.CompendiumTitle)
	fill(&d.VideoProvider, base.VideoProvider)
	fill(&d.DefaultPDFFormat, base.DefaultPDFFormat)
}

// Registry of dialects by name (e.g., "en", "ru").
var (
	mu       sync.RWMutex
	registry = map[string]*Dialect{}
)

// Register a dialect preset. Call from init() in subpackages.
func Register(name string, d *Dialect) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = d
}

// Lookup returns a registered dialect.
func Lookup(name string) (*Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Get is Lookup with an error for unknown names.
func Get(name string) (*Dialect, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names lists registered dialect names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
