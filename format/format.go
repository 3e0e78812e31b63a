// Package format writes saidoc results as JSON, YAML or tab separated
// text lines.
package format

import (
	"fmt"
	"io"
)

type Encoder interface {
	Encode(v any) error
}

// Names lists the accepted output formats.
var Names = []string{"json", "yaml", "text"}

// New returns the encoder for the named format writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "text", "":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
