// Package javadoc tokenizes documentation comments into a notation
// independent Comment and interprets the tag directives they carry.
package javadoc

import (
	"fmt"
	"strings"
)

// Comment is the semantic content of one documentation comment. Empty
// parts are nil so that comments from different notations compare equal
// with reflect.DeepEqual.
type Comment struct {
	Headline string     `json:"headline,omitempty" yaml:"headline,omitempty"`
	Body     []string   `json:"body,omitempty" yaml:"body,omitempty"`
	Tags     []TagEntry `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// TagEntry is one block tag. Args are the whitespace separated words on
// the tag line, ExtraLines the continuation lines that followed it.
type TagEntry struct {
	Name       string   `json:"name" yaml:"name"`
	Args       []string `json:"args,omitempty" yaml:"args,omitempty"`
	ExtraLines []string `json:"extraLines,omitempty" yaml:"extraLines,omitempty"`
}

// Text returns the tag value: the arguments joined by a space followed by
// the continuation lines, one per line.
func (t TagEntry) Text() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(t.Args, " "))
	for _, line := range t.ExtraLines {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// IsEmpty reports whether the comment carries no content at all.
func (c Comment) IsEmpty() bool {
	return c.Headline == "" && len(c.Body) == 0 && len(c.Tags) == 0
}

// Description returns headline and body joined by newlines.
func (c Comment) Description() string {
	if c.Headline == "" && len(c.Body) == 0 {
		return ""
	}
	lines := make([]string, 0, len(c.Body)+1)
	lines = append(lines, c.Headline)
	lines = append(lines, c.Body...)
	return strings.Join(lines, "\n")
}

func (c Comment) HasTag(name string) bool {
	_, ok := c.Tag(name)
	return ok
}

// Tag returns the first tag with the given name.
func (c Comment) Tag(name string) (TagEntry, bool) {
	for _, t := range c.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return TagEntry{}, false
}

// TagsNamed returns all tags with the given name in encounter order.
func (c Comment) TagsNamed(name string) []TagEntry {
	var result []TagEntry
	for _, t := range c.Tags {
		if t.Name == name {
			result = append(result, t)
		}
	}
	return result
}

// StructuralParseError reports input whose delimiters do not form a
// well-formed comment.
type StructuralParseError struct {
	Notation string
	Line     int
	Reason   string
}

func (e *StructuralParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s comment at line %d: %s", e.Notation, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed %s comment: %s", e.Notation, e.Reason)
}
