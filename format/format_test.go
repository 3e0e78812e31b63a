package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/saidoc/java/aggregate"
	"github.com/dhamidi/saidoc/java/enumconst"
	"github.com/dhamidi/saidoc/java/javadoc"
)

func encode(t *testing.T, name string, v any) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := New(name, &buf)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(v))
	return buf.String()
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{})
	assert.EqualError(t, err, `unknown output format "xml"`)
}

func TestJSON(t *testing.T) {
	got := encode(t, "json", []enumconst.EnumValue{{Name: "A", Fields: map[string]any{"code": 1}}})
	assert.JSONEq(t, `[{"name":"A","ordinal":0,"fields":{"code":1}}]`, got)
}

func TestYAML(t *testing.T) {
	got := encode(t, "yaml", javadoc.Comment{Headline: "head", Tags: []javadoc.TagEntry{{Name: "single"}}})
	assert.YAMLEq(t, "headline: head\ntags:\n  - name: single\n", got)
}

func TestLineFields(t *testing.T) {
	got := encode(t, "text", []aggregate.FieldView{
		{Name: "p-a", TypeName: "java.lang.String", Single: true, Description: "single line"},
		{Name: "id", TypeName: "java.lang.Long", Unwrapped: true, UnwrappedFrom: "userInfo", Description: "user id\nmore"},
	})
	assert.Equal(t, ""+
		"field  p-a  java.lang.String  single         single line\n"+
		"field  id   java.lang.Long    from:userInfo  user id\n", got)
}

func TestLineEnumValues(t *testing.T) {
	got := encode(t, "text", []enumconst.EnumValue{
		{Name: "ONE", Fields: map[string]any{"value": 1.1, "name": "a"}},
		{Name: "TWO", Ordinal: 1},
	})
	assert.Equal(t, "constant  ONE  0  name=a value=1.1\nconstant  TWO  1  -\n", got)
}
