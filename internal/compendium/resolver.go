package compendium

import "strings"

// TaskResolver assigns a task number to a code body whose task is not stated.
type TaskResolver interface {
	Resolve(code string) Resolution
}

// Resolution is a resolved task number plus how it was reached.
type Resolution struct {
	Task   int
	Source TaskSource
	Rule   string // name of the matching rule, empty for fallback
}

// Rule maps a content test to a task number.
type Rule struct {
	Name  string
	Match func(code string) bool
	Task  int
}

// ContainsAny builds a Match that fires when code contains any of subs.
func ContainsAny(subs ...string) func(string) bool {
	return func(code string) bool {
		for _, s := range subs {
			if strings.Contains(code, s) {
				return true
			}
		}
		return false
	}
}

// RuleResolver evaluates Rules top to bottom; the first match wins. When nothing
// matches it returns Fallback with source TaskFallback.
type RuleResolver struct {
	Rules    []Rule
	Fallback int
}

// DefaultRules is the substring table used for the informatics exam export.
// It is approximate: file names and keywords stand in for an explicit task tag.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "24.txt|replace", Match: ContainsAny("24.txt", "replace"), Task: 24},
		{Name: "26.txt", Match: ContainsAny("26.txt"), Task: 26},
		{Name: "27", Match: ContainsAny("27"), Task: 27},
		{Name: "import re", Match: ContainsAny("import re"), Task: 24},
	}
}

// DefaultFallbackTask is used when no rule matches.
const DefaultFallbackTask = 26

func NewDefaultResolver() *RuleResolver {
	return &RuleResolver{Rules: DefaultRules(), Fallback: DefaultFallbackTask}
}

func (r *RuleResolver) Resolve(code string) Resolution {
	for _, rule := range r.Rules {
		if rule.Match != nil && rule.Match(code) {
			return Resolution{Task: rule.Task, Source: TaskHeuristic, Rule: rule.Name}
		}
	}
	return Resolution{Task: r.Fallback, Source: TaskFallback}
}
