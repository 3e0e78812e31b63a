package javadoc

import (
	"strings"
)

// Tag names with a meaning beyond plain metadata.
const (
	TagIgnore    = "ignore"
	TagUnwrapped = "unwrapped"
	TagType      = "type"
	TagSingle    = "single"
	TagDesc      = "desc"
	TagPrefix    = "prefix"
	TagSuffix    = "suffix"
	TagModule    = "module"
	TagParam     = "param"
)

// Directives is the interpreted form of a comment's tags.
type Directives struct {
	Ignore    bool          `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Unwrapped bool          `json:"unwrapped,omitempty" yaml:"unwrapped,omitempty"`
	Single    bool          `json:"single,omitempty" yaml:"single,omitempty"`
	Type      string        `json:"type,omitempty" yaml:"type,omitempty"`
	Desc      string        `json:"desc,omitempty" yaml:"desc,omitempty"`
	Prefix    string        `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix    string        `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Modules   []ModuleGroup `json:"modules,omitempty" yaml:"modules,omitempty"`
	Params    []ParamDoc    `json:"params,omitempty" yaml:"params,omitempty"`
	// Tags holds the text of every tag, recognized or not, keyed by name.
	Tags map[string][]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type ModuleGroup struct {
	Name  string   `json:"name" yaml:"name"`
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`
}

type ParamDoc struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	TypeParameter bool   `json:"typeParameter,omitempty" yaml:"typeParameter,omitempty"`
}

// Interpret evaluates the directives of c. Scalar directives take the
// value of their first occurrence.
func Interpret(c Comment) Directives {
	var d Directives
	seen := make(map[string]bool)
	first := func(name string) bool {
		if seen[name] {
			return false
		}
		seen[name] = true
		return true
	}

	for _, tag := range c.Tags {
		if d.Tags == nil {
			d.Tags = make(map[string][]string)
		}
		d.Tags[tag.Name] = append(d.Tags[tag.Name], tag.Text())

		switch tag.Name {
		case TagIgnore:
			d.Ignore = true
		case TagUnwrapped:
			d.Unwrapped = true
		case TagSingle:
			d.Single = true
		case TagType:
			if first(tag.Name) {
				d.Type = strings.Join(tag.Args, "")
			}
		case TagDesc:
			if first(tag.Name) {
				d.Desc = tag.Text()
			}
		case TagPrefix:
			if first(tag.Name) {
				d.Prefix = strings.Join(tag.Args, "")
			}
		case TagSuffix:
			if first(tag.Name) {
				d.Suffix = strings.Join(tag.Args, "")
			}
		case TagModule:
			d.Modules = append(d.Modules, moduleGroup(tag))
		case TagParam:
			if len(tag.Args) > 0 {
				d.Params = append(d.Params, paramDoc(tag))
			}
		}
	}
	return d
}

func moduleGroup(tag TagEntry) ModuleGroup {
	var g ModuleGroup
	if len(tag.Args) > 0 {
		g.Name = tag.Args[0]
		if len(tag.Args) > 1 {
			g.Lines = append(g.Lines, strings.Join(tag.Args[1:], " "))
		}
	}
	g.Lines = append(g.Lines, tag.ExtraLines...)
	return g
}

func paramDoc(tag TagEntry) ParamDoc {
	name := tag.Args[0]
	p := ParamDoc{Name: name}
	if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">") {
		p.Name = name[1 : len(name)-1]
		p.TypeParameter = true
	}
	rest := TagEntry{Args: tag.Args[1:], ExtraLines: tag.ExtraLines}
	p.Description = rest.Text()
	return p
}

// ApplyName returns name with the prefix and suffix directives applied.
func (d Directives) ApplyName(name string) string {
	return d.Prefix + name + d.Suffix
}

// ParamDoc returns the description of the named method parameter.
func (d Directives) ParamDoc(name string) (string, bool) {
	for _, p := range d.Params {
		if p.Name == name && !p.TypeParameter {
			return p.Description, true
		}
	}
	return "", false
}
