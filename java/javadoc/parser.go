package javadoc

import (
	"strings"
	"unicode"
)

// Parse tokenizes raw comment text written in notation n. A nil notation
// is treated as Auto.
func Parse(raw string, n Notation) (Comment, error) {
	if strings.TrimSpace(raw) == "" {
		return Comment{}, nil
	}
	if n == nil {
		n = Auto
	}
	lines, err := n.Lines(raw)
	if err != nil {
		return Comment{}, err
	}
	return parseLines(lines), nil
}

// parser walks the content lines of one comment, tracking whether the
// current line sits inside a <pre> block or a ``` fence.
type parser struct {
	lines []string
	pos   int

	inPre   bool
	inFence bool

	description []string
	tags        []TagEntry
}

func parseLines(lines []string) Comment {
	p := &parser{lines: lines}
	p.parseDescription()
	p.parseTags()
	return p.comment()
}

// verbatim reports whether the current line is inside preformatted text,
// then advances the pre/fence state past it.
func (p *parser) verbatim(line string) bool {
	inside := p.inPre || p.inFence
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "```") {
		p.inFence = !p.inFence
	}
	if !p.inFence {
		lower := strings.ToLower(line)
		openAt := strings.LastIndex(lower, "<pre")
		closeAt := strings.LastIndex(lower, "</pre>")
		switch {
		case openAt >= 0 && openAt > closeAt:
			p.inPre = true
		case closeAt >= 0:
			p.inPre = false
		}
	}
	return inside
}

func (p *parser) parseDescription() {
	for ; p.pos < len(p.lines); p.pos++ {
		line := p.lines[p.pos]
		inside := p.inPre || p.inFence
		if !inside && isTagLine(line) {
			return
		}
		if p.verbatim(line) {
			p.description = append(p.description, line)
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if n := len(p.description); n > 0 && p.description[n-1] != "" {
				p.description = append(p.description, "")
			}
			continue
		}
		p.description = append(p.description, trimmed)
	}
}

func (p *parser) parseTags() {
	var current *TagEntry
	for ; p.pos < len(p.lines); p.pos++ {
		line := p.lines[p.pos]
		inside := p.inPre || p.inFence
		if !inside && isTagLine(line) {
			p.verbatim(line)
			p.tags = append(p.tags, parseTagLine(line))
			current = &p.tags[len(p.tags)-1]
			continue
		}
		if p.verbatim(line) {
			if current != nil {
				current.ExtraLines = append(current.ExtraLines, line)
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || current == nil {
			continue
		}
		current.ExtraLines = append(current.ExtraLines, trimmed)
	}
}

func (p *parser) comment() Comment {
	desc := p.description
	for len(desc) > 0 && desc[len(desc)-1] == "" {
		desc = desc[:len(desc)-1]
	}
	var c Comment
	if len(desc) > 0 {
		c.Headline = desc[0]
		if len(desc) > 1 {
			c.Body = desc[1:]
		}
	}
	if len(p.tags) > 0 {
		c.Tags = p.tags
	}
	return c
}

func isTagLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '@' {
		return false
	}
	r := rune(trimmed[1])
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isTagNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

func parseTagLine(line string) TagEntry {
	trimmed := strings.TrimSpace(line)[1:]
	end := strings.IndexFunc(trimmed, func(r rune) bool { return !isTagNameChar(r) })
	if end < 0 {
		end = len(trimmed)
	}
	tag := TagEntry{Name: trimmed[:end]}
	if args := strings.Fields(trimmed[end:]); len(args) > 0 {
		tag.Args = args
	}
	return tag
}
