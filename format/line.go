package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/aggregate"
	"github.com/dhamidi/saidoc/java/enumconst"
	"github.com/dhamidi/saidoc/java/javadoc"
	"github.com/dhamidi/saidoc/java/link"
)

// LineEncoder writes one tab separated record per item, the record kind
// first. Columns are aligned per Encode call.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(v any) error {
	tw := tabwriter.NewWriter(e.w, 0, 4, 2, ' ', 0)

	switch v := v.(type) {
	case []aggregate.FieldView:
		for _, f := range v {
			fmt.Fprintf(tw, "field\t%s\t%s\t%s\t%s\n", f.Name, f.TypeName, fieldFlags(f), firstLine(f.Description))
		}
	case []aggregate.MethodView:
		for _, m := range v {
			fmt.Fprintf(tw, "method\t%s\t%s\t%s\t%s\n", m.Name, m.ReturnType, parametersStr(m.Parameters), firstLine(m.Description))
		}
	case []enumconst.EnumValue:
		for _, ev := range v {
			fmt.Fprintf(tw, "constant\t%s\t%d\t%s\n", ev.Name, ev.Ordinal, fieldsStr(ev.Fields))
		}
	case javadoc.Comment:
		if v.Headline != "" {
			fmt.Fprintf(tw, "headline\t%s\n", v.Headline)
		}
		for _, line := range v.Body {
			fmt.Fprintf(tw, "body\t%s\n", line)
		}
		for _, tag := range v.Tags {
			fmt.Fprintf(tw, "tag\t%s\t%s\n", tag.Name, strings.ReplaceAll(tag.Text(), "\n", " "))
		}
	case []link.Reference:
		for _, ref := range v {
			fmt.Fprintf(tw, "link\t%s\t%s\t%s\t%s\n", ref.Kind, ref.TargetText, ref.Resolution.State, resolvedStr(ref.Resolution))
		}
	case []*java.ClassModel:
		for _, c := range v {
			fmt.Fprintf(tw, "%s\t%s\t%d fields\t%d methods\t%s\n", c.Kind, c.Name, len(c.Fields), len(c.Methods), c.SourceFile)
		}
	default:
		fmt.Fprintf(tw, "%v\n", v)
	}
	return tw.Flush()
}

func fieldFlags(f aggregate.FieldView) string {
	var flags []string
	if f.Single {
		flags = append(flags, "single")
	}
	if f.IgnoredForRead {
		flags = append(flags, "ignore-read")
	}
	if f.IgnoredForWrite {
		flags = append(flags, "ignore-write")
	}
	if f.Unwrapped {
		flags = append(flags, "from:"+f.UnwrappedFrom)
	}
	if len(f.EnumValues) > 0 {
		flags = append(flags, fmt.Sprintf("enum:%d", len(f.EnumValues)))
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func parametersStr(params []aggregate.ParameterView) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func fieldsStr(fields map[string]any) string {
	if len(fields) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return strings.Join(parts, " ")
}

func resolvedStr(r link.Resolution) string {
	switch {
	case r.Symbol != nil:
		return r.Symbol.QualifiedName
	case r.URL != "":
		return r.URL
	}
	return "-"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
