package javadoc

import (
	"strings"
)

// Notation strips the delimiters of one comment syntax and returns the
// content lines. Lines keep their indentation relative to the marker but
// carry no trailing whitespace.
type Notation interface {
	Name() string
	Lines(raw string) ([]string, error)
}

var (
	// Block is the classic /** ... */ notation.
	Block Notation = blockNotation{}
	// Line is the /// notation, one marker per line.
	Line Notation = lineNotation{}
	// Plain is text whose markers were already removed.
	Plain Notation = plainNotation{}
	// Auto picks one of the above from the shape of the input.
	Auto Notation = autoNotation{}
)

// Detect returns the notation raw is written in.
func Detect(raw string) Notation {
	s := strings.TrimLeft(raw, " \t\r\n")
	switch {
	case strings.HasPrefix(s, "///"):
		return Line
	case strings.HasPrefix(s, "/*"):
		return Block
	}
	return Plain
}

// NotationByName maps the configuration names to notations.
func NotationByName(name string) (Notation, bool) {
	switch name {
	case "", "auto":
		return Auto, true
	case "block":
		return Block, true
	case "line":
		return Line, true
	case "plain":
		return Plain, true
	}
	return nil, false
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// stripMarker removes leading whitespace, the marker if present, and at
// most one following space.
func stripMarker(line, marker string) (string, bool) {
	line = strings.TrimLeft(line, " \t")
	found := strings.HasPrefix(line, marker)
	if found {
		line = line[len(marker):]
		if strings.HasPrefix(line, " ") {
			line = line[1:]
		}
	}
	return strings.TrimRight(line, " \t"), found
}

type blockNotation struct{}

func (blockNotation) Name() string { return "block" }

func (blockNotation) Lines(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "/*") {
		return nil, &StructuralParseError{Notation: "block", Line: 1, Reason: "missing opening /*"}
	}
	if len(s) < 4 || !strings.HasSuffix(s, "*/") {
		return nil, &StructuralParseError{Notation: "block", Reason: "missing closing */"}
	}
	inner := s[2 : len(s)-2]
	if strings.HasPrefix(inner, "*") {
		inner = inner[1:]
	}
	if strings.Contains(inner, "*/") {
		return nil, &StructuralParseError{Notation: "block", Reason: "comment closed before its end"}
	}
	raws := splitLines(inner)
	lines := make([]string, len(raws))
	for i, line := range raws {
		lines[i], _ = stripMarker(line, "*")
	}
	return lines, nil
}

type lineNotation struct{}

func (lineNotation) Name() string { return "line" }

func (lineNotation) Lines(raw string) ([]string, error) {
	raws := splitLines(strings.TrimLeft(strings.TrimRight(raw, " \t\r\n"), "\r\n"))
	lines := make([]string, 0, len(raws))
	for i, line := range raws {
		content, ok := stripMarker(line, "///")
		if !ok {
			return nil, &StructuralParseError{Notation: "line", Line: i + 1, Reason: "line does not start with ///"}
		}
		lines = append(lines, content)
	}
	return lines, nil
}

type plainNotation struct{}

func (plainNotation) Name() string { return "plain" }

func (plainNotation) Lines(raw string) ([]string, error) {
	raws := splitLines(raw)
	for i := range raws {
		raws[i] = strings.TrimRight(raws[i], " \t")
	}
	return raws, nil
}

type autoNotation struct{}

func (autoNotation) Name() string { return "auto" }

func (autoNotation) Lines(raw string) ([]string, error) {
	return Detect(raw).Lines(raw)
}
