// Package prompts holds the fixed prompt templates and the placeholder engine that renders them.
// Templates are stored as JSON and embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "coldmail/job-application-helper/internal/errors"
)

// Template names used by the generation pipeline.
const (
	Summary = "summary"
	Email   = "email"
	Subject = "subject"
)

//go:embed templates.json
var templatesJSON []byte

var templates map[string]string

func init() {
	if err := json.Unmarshal(templatesJSON, &templates); err != nil {
		panic(fmt.Sprintf("failed to parse embedded prompt templates: %v", err))
	}
}

// Template is a named text with {placeholder} substitution points.
type Template struct {
	Name string
	Text string
}

// Get returns the embedded template with the given name.
func Get(name string) (Template, error) {
	text, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("prompt template %q not found", name)
	}
	return Template{Name: name, Text: text}, nil
}

// MustGet is Get for templates required at initialization time.
func MustGet(name string) Template {
	t, err := Get(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Names lists the embedded templates in sorted order.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render substitutes every {name} token in t with vars[name].
// Substitution is a single literal pass: values are never escaped or re-scanned,
// so a value containing braces is copied verbatim. A brace pair that does not
// enclose an identifier is left as literal text.
func Render(t Template, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(t.Text))

	text := t.Text
	for {
		start, end, name := nextPlaceholder(text)
		if start < 0 {
			b.WriteString(text)
			return b.String(), nil
		}

		value, ok := vars[name]
		if !ok {
			return "", apperrors.NewMissingVariable(t.Name, name)
		}

		b.WriteString(text[:start])
		b.WriteString(value)
		text = text[end:]
	}
}

// Placeholders returns the distinct placeholder names in t, in order of first use.
func Placeholders(t Template) []string {
	var names []string
	seen := make(map[string]bool)

	text := t.Text
	for {
		_, end, name := nextPlaceholder(text)
		if end < 0 {
			return names
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		text = text[end:]
	}
}

// nextPlaceholder finds the first {identifier} token in s.
// It returns the token's byte range and name, or -1, -1 when none remains.
func nextPlaceholder(s string) (int, int, string) {
	offset := 0
	for {
		open := strings.IndexByte(s[offset:], '{')
		if open < 0 {
			return -1, -1, ""
		}
		open += offset

		closeRel := strings.IndexByte(s[open+1:], '}')
		if closeRel < 0 {
			return -1, -1, ""
		}
		end := open + 1 + closeRel

		name := s[open+1 : end]
		if isIdentifier(name) {
			return open, end + 1, name
		}
		offset = open + 1
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
