package link

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/javadoc"
)

var log = commonlog.GetLogger("saidoc.link")

// linkPattern matches every link syntax in one alternation. Go's regexp
// prefers the leftmost match and, among matches starting at the same
// position, the earliest alternative, so the more specific forms are
// listed first.
var linkPattern = regexp.MustCompile(strings.Join([]string{
	`\{@link(?:plain)?\s+([^\s}(]+(?:\([^)]*\))?)(?:\s+([^}]*?))?\s*\}`, // 1,2: {@link target label}
	`\[([^\[\]]*)\]\(((?:[^()\s]|\([^()\s]*\))+)\)`, // 3,4: [text](url), url may hold one level of (...)
	`\[([^\[\]]+)\]\[([^\[\]]*)\]`,                  // 5,6: [text][target]
	`\[([A-Za-z_$#][^\[\]]*)\]`,                     // 7:   [Text]
	"`([A-Za-z_$][A-Za-z0-9_$]*)`",                  // 8:   `identifier`
}, "|"))

var definitionPattern = regexp.MustCompile(`(?m)^[ \t]*\[([^\[\]]+)\]:[ \t]*(\S+)[ \t]*$`)

// Resolver finds links in comments and resolves them through a symbol
// table. A Resolver holds no mutable state and is safe for concurrent
// use.
type Resolver struct {
	table java.SymbolTable
}

// NewResolver returns a Resolver backed by table. A nil table leaves every
// symbol link unresolved.
func NewResolver(table java.SymbolTable) *Resolver {
	return &Resolver{table: table}
}

// Resolve returns the links in the description of c, in text order.
func (r *Resolver) Resolve(c javadoc.Comment, scope *java.ClassModel) []Reference {
	return r.ResolveText(c.Description(), scope)
}

// ResolveText returns the links in text, in text order.
func (r *Resolver) ResolveText(text string, scope *java.ClassModel) []Reference {
	refs, _ := r.scan(text, scope)
	return refs
}

// Rewrite returns the description of c with every link replaced by the
// output of render and reference definition lines removed.
func (r *Resolver) Rewrite(c javadoc.Comment, scope *java.ClassModel, render func(Reference) string) string {
	text := c.Description()
	refs, defs := r.scan(text, scope)

	type span struct {
		start, end int
		ref        *Reference
	}
	spans := make([]span, 0, len(refs)+len(defs))
	for i := range refs {
		spans = append(spans, span{start: refs[i].Offset, end: refs[i].end(), ref: &refs[i]})
	}
	for _, d := range defs {
		end := d[1]
		if end < len(text) && text[end] == '\n' {
			end++
		}
		spans = append(spans, span{start: d[0], end: end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		if s.start < pos {
			continue
		}
		sb.WriteString(text[pos:s.start])
		if s.ref != nil {
			sb.WriteString(render(*s.ref))
		}
		pos = s.end
	}
	sb.WriteString(text[pos:])
	return strings.TrimRight(sb.String(), "\n")
}

// scan returns the references in text along with the byte ranges of the
// definition lines it consumed.
func (r *Resolver) scan(text string, scope *java.ClassModel) ([]Reference, [][]int) {
	masked := maskPreformatted(text)

	defs := make(map[string]string)
	defRanges := definitionPattern.FindAllStringSubmatchIndex(masked, -1)
	for _, m := range defRanges {
		key := strings.ToLower(masked[m[2]:m[3]])
		if _, dup := defs[key]; !dup {
			defs[key] = masked[m[4]:m[5]]
		}
	}
	for _, m := range defRanges {
		masked = blank(masked, m[0], m[1])
	}

	var refs []Reference
	for _, m := range linkPattern.FindAllStringSubmatchIndex(masked, -1) {
		group := func(i int) (string, bool) {
			if m[2*i] < 0 {
				return "", false
			}
			return text[m[2*i]:m[2*i+1]], true
		}
		raw := text[m[0]:m[1]]

		var ref Reference
		var ok bool
		switch {
		case m[2] >= 0:
			target, _ := group(1)
			label, _ := group(2)
			ref, ok = r.symbolLink(raw, target, strings.TrimSpace(label), scope), true
		case m[6] >= 0:
			label, _ := group(3)
			url, _ := group(4)
			ref = Reference{RawText: raw, TargetText: url, DisplayText: label, Kind: UrlLink,
				Resolution: Resolution{State: External, URL: url}}
			ok = true
		case m[10] >= 0:
			label, _ := group(5)
			target, _ := group(6)
			ref, ok = r.referenceLink(raw, label, target, defs, scope), true
		case m[14] >= 0:
			target, _ := group(7)
			if url, found := defs[strings.ToLower(target)]; found {
				ref = Reference{RawText: raw, TargetText: target, Kind: ReferenceLink,
					Resolution: Resolution{State: External, URL: url}}
			} else {
				ref = r.symbolLink(raw, target, "", scope)
			}
			ok = true
		case m[16] >= 0:
			ident, _ := group(8)
			ref, ok = r.backtickLink(raw, ident, scope)
		}
		if !ok {
			continue
		}
		ref.Offset = m[0]
		refs = append(refs, ref)
	}
	return refs, defRanges
}

func (r *Resolver) referenceLink(raw, label, target string, defs map[string]string, scope *java.ClassModel) Reference {
	key := target
	if key == "" {
		key = label
	}
	if url, ok := defs[strings.ToLower(key)]; ok {
		return Reference{RawText: raw, TargetText: key, DisplayText: label, Kind: ReferenceLink,
			Resolution: Resolution{State: External, URL: url}}
	}
	if target == "" {
		// collapsed reference without a definition
		return r.symbolLink(raw, label, "", scope)
	}
	return r.symbolLink(raw, target, label, scope)
}

func (r *Resolver) symbolLink(raw, target, label string, scope *java.ClassModel) Reference {
	target = strings.TrimSpace(target)
	ref := Reference{RawText: raw, TargetText: target, DisplayText: label, Kind: TypeLink}
	if strings.Contains(target, "#") {
		ref.Kind = MemberLink
	}
	ref.Resolution = r.lookup(scope, target)
	return ref
}

func (r *Resolver) backtickLink(raw, ident string, scope *java.ClassModel) (Reference, bool) {
	if r.table == nil || scope == nil {
		return Reference{}, false
	}
	sym, ok := r.table.ResolveMember(scope, ident)
	if !ok {
		return Reference{}, false
	}
	return Reference{
		RawText:    raw,
		TargetText: ident,
		Kind:       BacktickLink,
		Resolution: Resolution{State: ResolvedMember, Symbol: &sym},
	}, true
}

func (r *Resolver) lookup(scope *java.ClassModel, target string) Resolution {
	if r.table == nil || target == "" {
		return Resolution{State: Unresolved}
	}
	sym, ok := r.table.Resolve(scope, target)
	if !ok {
		if scope != nil {
			log.Debugf("unresolved link %q in %s", target, scope.Name)
		}
		return Resolution{State: Unresolved}
	}
	if sym.IsMember() {
		return Resolution{State: ResolvedMember, Symbol: &sym}
	}
	return Resolution{State: ResolvedType, Symbol: &sym}
}

// maskPreformatted replaces the content of <pre> blocks and ``` fences
// with spaces, keeping byte offsets intact.
func maskPreformatted(text string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	sb.Grow(len(text))
	inPre, inFence := false, false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(line)
		fence := strings.HasPrefix(trimmed, "```")

		masked := inPre || inFence || fence
		if !inFence && strings.Contains(lower, "<pre") {
			masked = true
		}

		if fence {
			inFence = !inFence
		}
		if !inFence {
			openAt := strings.LastIndex(lower, "<pre")
			closeAt := strings.LastIndex(lower, "</pre>")
			switch {
			case openAt >= 0 && openAt > closeAt:
				inPre = true
			case closeAt >= 0:
				inPre = false
			}
		}

		if masked {
			sb.WriteString(blankLine(line))
		} else {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func blankLine(line string) string {
	b := []byte(line)
	for i := range b {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
	return string(b)
}

func blank(s string, start, end int) string {
	return s[:start] + blankLine(s[start:end]) + s[end:]
}
