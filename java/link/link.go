// Package link extracts cross references from documentation comments and
// resolves them against a symbol table.
package link

import (
	"github.com/dhamidi/saidoc/java"
)

type Kind string

const (
	TypeLink      Kind = "type"
	MemberLink    Kind = "member"
	UrlLink       Kind = "url"
	ReferenceLink Kind = "reference"
	BacktickLink  Kind = "backtick"
)

type State string

const (
	Unresolved     State = "unresolved"
	ResolvedType   State = "type"
	ResolvedMember State = "member"
	// External marks links whose target is a URL rather than a symbol.
	External State = "external"
)

type Resolution struct {
	State  State        `json:"state" yaml:"state"`
	Symbol *java.Symbol `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	URL    string       `json:"url,omitempty" yaml:"url,omitempty"`
}

func (r Resolution) Resolved() bool {
	return r.State != Unresolved
}

// Reference is one link found in a comment's description. Offset is the
// byte offset of RawText in the description text.
type Reference struct {
	RawText     string     `json:"rawText" yaml:"rawText"`
	TargetText  string     `json:"targetText" yaml:"targetText"`
	DisplayText string     `json:"displayText,omitempty" yaml:"displayText,omitempty"`
	Kind        Kind       `json:"kind" yaml:"kind"`
	Resolution  Resolution `json:"resolution" yaml:"resolution"`
	Offset      int        `json:"offset" yaml:"offset"`
}

// Label is the text a renderer should show for the link.
func (r Reference) Label() string {
	if r.DisplayText != "" {
		return r.DisplayText
	}
	return r.TargetText
}

func (r Reference) end() int {
	return r.Offset + len(r.RawText)
}
