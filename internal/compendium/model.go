// Package compendium parses a plain-text variant compendium export into the
// normalized catalog schema (meta + variants).
package compendium

import (
	"bytes"
	"encoding/json"
)

// SchemaVersion is written to meta.version of every compendium.
const SchemaVersion = "2.0"

type Compendium struct {
	Meta     Meta      `json:"meta"`
	Variants []Variant `json:"variants"`
}

type Meta struct {
	Version       string `json:"version"`
	GeneratedAt   string `json:"generated_at"`
	TotalVariants int    `json:"total_variants"`
	Title         string `json:"title"`
}

type Variant struct {
	ID        string        `json:"id"`
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Materials MaterialSet   `json:"materials"`
	Solutions []Solution    `json:"solutions"`
	Answers   []AnswerEntry `json:"answers"`
}

type MaterialSet struct {
	// MainDocument is the zero value ({} in JSON) when no primary document was found.
	MainDocument Document     `json:"main_document"`
	Attachments  []Attachment `json:"attachments"`
}

type Document struct {
	Type     string `json:"type,omitempty"` // pdf
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Present reports whether a primary document was detected.
func (d Document) Present() bool { return d.Type != "" }

type Attachment struct {
	Type     string `json:"type"` // zip
	Label    string `json:"label"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type SolutionType string

const (
	SolutionVideo SolutionType = "video"
	SolutionCode  SolutionType = "code"
)

// TaskSource says how a solution's task number was obtained.
type TaskSource string

const (
	TaskExplicit  TaskSource = "explicit"  // stated in the source text
	TaskHeuristic TaskSource = "heuristic" // inferred by a resolver rule
	TaskFallback  TaskSource = "fallback"  // no rule matched; default task used
)

type Solution struct {
	TaskNumber  int             `json:"task_number"`
	Type        SolutionType    `json:"type"`
	TaskSource  TaskSource      `json:"task_source"`
	MatchedRule string          `json:"matched_rule,omitempty"`
	Content     SolutionContent `json:"content"`
}

// SolutionContent carries the fields of either a video or a code solution.
type SolutionContent struct {
	// video
	Provider string `json:"provider,omitempty"`
	URL      string `json:"url,omitempty"`

	// code
	Language string `json:"language,omitempty"` // python|text
	Snippet  string `json:"snippet,omitempty"`

	Title string `json:"title"`
}

// MarshalJSON always writes "snippet" for code content (Language set), even when
// the fenced block was empty.
func (c SolutionContent) MarshalJSON() ([]byte, error) {
	type plain SolutionContent
	var v any = plain(c)
	if c.Language != "" {
		v = struct {
			Provider string `json:"provider,omitempty"`
			URL      string `json:"url,omitempty"`
			Language string `json:"language"`
			Snippet  string `json:"snippet"`
			Title    string `json:"title"`
		}{c.Provider, c.URL, c.Language, c.Snippet, c.Title}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type AnswerEntry struct {
	Task        int    `json:"task"`
	Value       string `json:"value"`
	IsMultiline bool   `json:"is_multiline"`
}
