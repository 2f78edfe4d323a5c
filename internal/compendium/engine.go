package compendium

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mind-engage/compendium/internal/dialect"
)

// Extractor turns one compendium export into a Compendium. It holds no state
// between calls; the zero clock is time.Now.
type Extractor struct {
	dialect  *dialect.Dialect
	resolver TaskResolver
	now      func() time.Time
}

type Option func(*Extractor)

// WithResolver replaces the default substring resolver.
func WithResolver(r TaskResolver) Option { return func(e *Extractor) { e.resolver = r } }

// WithClock sets the source of meta.generated_at.
func WithClock(now func() time.Time) Option { return func(e *Extractor) { e.now = now } }

func NewExtractor(d *dialect.Dialect, opts ...Option) (*Extractor, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{dialect: d, resolver: NewDefaultResolver(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	if e.resolver == nil {
		return nil, errors.New("task resolver is required")
	}
	return e, nil
}

func (e *Extractor) Dialect() *dialect.Dialect { return e.dialect }

// SplitSections cuts text at the first answer-key marker. Without a marker the
// whole text is body and the answer key is empty.
func SplitSections(d *dialect.Dialect, text string) (body, answers string) {
	body, answers, found := strings.Cut(text, d.AnswerKeyMarker)
	if !found {
		return text, ""
	}
	return body, answers
}

// Extract parses text. Malformed or unmatched input never fails; it just
// yields fewer records.
func (e *Extractor) Extract(text string) *Compendium {
	p := e.dialect.Patterns()
	body, answerText := SplitSections(e.dialect, text)
	answers := ParseAnswers(p, answerText)

	spans := Segment(p, body)
	variants := make([]Variant, 0, len(spans))
	for _, sp := range spans {
		variants = append(variants, e.assemble(sp, answers[sp.Number]))
	}

	return &Compendium{
		Meta: Meta{
			Version:       SchemaVersion,
			GeneratedAt:   e.now().Format(time.RFC3339),
			TotalVariants: len(variants),
			Title:         e.dialect.CompendiumTitle,
		},
		Variants: variants,
	}
}

func (e *Extractor) assemble(sp Span, answers []AnswerEntry) Variant {
	v := Variant{
		ID:     VariantID(sp.Number),
		Number: sp.Number,
		Title:  fmt.Sprintf(e.dialect.VariantTitle, sp.Number),
		Slug:   VariantSlug(sp.Number),
		Materials: MaterialSet{
			Attachments: ExtractAttachments(e.dialect, sp.Text),
		},
		Answers: answers,
	}
	if doc, ok := ExtractMainDocument(e.dialect, sp.Number, sp.Text); ok {
		v.Materials.MainDocument = doc
	}
	v.Solutions = append(ExtractVideos(e.dialect, sp.Text), ExtractCode(e.dialect, e.resolver, sp.Text)...)
	if v.Solutions == nil {
		v.Solutions = []Solution{}
	}
	if v.Answers == nil {
		v.Answers = []AnswerEntry{}
	}
	sort.SliceStable(v.Solutions, func(i, j int) bool {
		return v.Solutions[i].TaskNumber < v.Solutions[j].TaskNumber
	})
	return v
}

func VariantID(n int) string   { return fmt.Sprintf("var-%02d", n) }
func VariantSlug(n int) string { return fmt.Sprintf("variant-%d", n) }

// Report summarizes a compendium for logs and API responses.
type Report struct {
	Variants          int  `json:"variants"`
	Solutions         int  `json:"solutions"`
	Answers           int  `json:"answers"`
	FallbackTasks     int  `json:"fallback_tasks"`
	FirstVariantEmpty bool `json:"first_variant_empty"`
}

// Summarize counts records. FirstVariantEmpty is set when the first variant has
// neither solutions nor attachments, which usually means the export format drifted.
func Summarize(c *Compendium) Report {
	r := Report{Variants: len(c.Variants)}
	for _, v := range c.Variants {
		r.Solutions += len(v.Solutions)
		r.Answers += len(v.Answers)
		for _, s := range v.Solutions {
			if s.TaskSource == TaskFallback {
				r.FallbackTasks++
			}
		}
	}
	if len(c.Variants) > 0 {
		first := c.Variants[0]
		r.FirstVariantEmpty = len(first.Solutions) == 0 && len(first.Materials.Attachments) == 0
	}
	return r
}
