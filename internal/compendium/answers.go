package compendium

import (
	"strconv"
	"strings"

	"github.com/mind-engage/compendium/internal/dialect"
)

// LineKind classifies one physical line of an answer section.
type LineKind int

const (
	LineBlank LineKind = iota
	LineSeparator
	LineTaskHeader
	LineContinuation
)

// ClassifyLine trims line and reports its kind. For LineTaskHeader it also returns
// the task number and the trimmed value following the colon.
func ClassifyLine(p *dialect.Patterns, line string) (kind LineKind, task int, value string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return LineBlank, 0, ""
	case isSeparator(line):
		return LineSeparator, 0, ""
	}
	if m := p.TaskHeader.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return LineTaskHeader, n, strings.TrimSpace(m[2])
		}
	}
	return LineContinuation, 0, line
}

// isSeparator reports a line made only of dashes.
func isSeparator(line string) bool {
	return line != "" && strings.Trim(line, "-") == ""
}

// answerState is the two-state accumulator: open == nil means "no open entry".
type answerState struct {
	open    *AnswerEntry
	entries []AnswerEntry
}

func (s *answerState) header(task int, value string) {
	s.flush()
	s.open = &AnswerEntry{Task: task, Value: value}
}

func (s *answerState) continuation(line string) {
	if s.open == nil {
		return
	}
	if s.open.Value == "" {
		s.open.Value = line
	} else {
		s.open.Value += "\n" + line
	}
	s.open.IsMultiline = true
}

func (s *answerState) flush() {
	if s.open != nil {
		s.entries = append(s.entries, *s.open)
		s.open = nil
	}
}

// ParseAnswers turns the answer-key text into per-variant entry lists. Text before
// the first variant header is ignored; an empty input yields an empty map.
func ParseAnswers(p *dialect.Patterns, text string) map[int][]AnswerEntry {
	out := map[int][]AnswerEntry{}
	if text == "" {
		return out
	}
	idx := p.AnswerSection.FindAllStringSubmatchIndex(text, -1)
	for i, m := range idx {
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		out[num] = parseAnswerSection(p, text[m[1]:end])
	}
	return out
}

func parseAnswerSection(p *dialect.Patterns, content string) []AnswerEntry {
	st := &answerState{}
	for _, raw := range strings.Split(strings.TrimSpace(content), "\n") {
		kind, task, value := ClassifyLine(p, raw)
		switch kind {
		case LineTaskHeader:
			st.header(task, value)
		case LineContinuation:
			st.continuation(value)
		}
	}
	st.flush()
	if st.entries == nil {
		return []AnswerEntry{}
	}
	return st.entries
}
