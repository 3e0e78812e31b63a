package javadoc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockComment(t *testing.T) {
	raw := `/**
     * multi-line
     * second line
     *
     * @multi
     * @module x
     * x1 x2 x3
     * @module y
     * @suffix -s
     */`

	c, err := Parse(raw, Block)
	require.NoError(t, err)

	assert.Equal(t, "multi-line", c.Headline)
	assert.Equal(t, []string{"second line"}, c.Body)
	assert.Equal(t, []TagEntry{
		{Name: "multi"},
		{Name: "module", Args: []string{"x"}, ExtraLines: []string{"x1 x2 x3"}},
		{Name: "module", Args: []string{"y"}},
		{Name: "suffix", Args: []string{"-s"}},
	}, c.Tags)
}

func TestParseSingleLineBlock(t *testing.T) {
	c, err := Parse("/** Simple text. */", Block)
	require.NoError(t, err)
	assert.Equal(t, Comment{Headline: "Simple text."}, c)
}

func TestParseNotationEquivalence(t *testing.T) {
	tests := []struct {
		name  string
		block string
		line  string
	}{
		{
			name:  "headline only",
			block: "/** A user. */",
			line:  "/// A user.",
		},
		{
			name: "paragraphs and tags",
			block: `/**
 * Holds a user.
 *
 *
 * Second paragraph
 * continues here.
 *
 * @param name the name
 *   spans two lines
 *
 * @module a
 */`,
			line: `/// Holds a user.
///
///
/// Second paragraph
/// continues here.
///
/// @param name the name
///   spans two lines
///
/// @module a`,
		},
		{
			name: "preformatted",
			block: `/**
 * Example:
 * <pre>
 *   {
 *
 *   @Override
 *   }
 * </pre>
 * @see Other
 */`,
			line: `/// Example:
/// <pre>
///   {
///
///   @Override
///   }
/// </pre>
/// @see Other`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.block, Block)
			require.NoError(t, err)
			l, err := Parse(tt.line, Line)
			require.NoError(t, err)
			assert.True(t, reflect.DeepEqual(b, l), "block %#v\nline  %#v", b, l)

			auto, err := Parse(tt.line, nil)
			require.NoError(t, err)
			assert.Equal(t, l, auto)
		})
	}
}

func TestParseCollapsesBlankLines(t *testing.T) {
	c, err := Parse("/**\n * a\n *\n *\n *\n * b\n *\n */", Block)
	require.NoError(t, err)
	assert.Equal(t, "a", c.Headline)
	assert.Equal(t, []string{"", "b"}, c.Body)
}

func TestParsePreservesPreformattedText(t *testing.T) {
	raw := `/**
     * head line
     * second line
     * <pre>
     *
     *     {
     *         "a":"b"
     *     }
     * @notATag
     * </pre>
     * <p>
     * see {@link somelink}
     *
     * @type com.itangcent.model.Node
     */`

	c, err := Parse(raw, Block)
	require.NoError(t, err)

	assert.Equal(t, "head line", c.Headline)
	assert.Equal(t, []string{
		"second line",
		"<pre>",
		"",
		"    {",
		`        "a":"b"`,
		"    }",
		"@notATag",
		"</pre>",
		"<p>",
		"see {@link somelink}",
	}, c.Body)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, TagEntry{Name: "type", Args: []string{"com.itangcent.model.Node"}}, c.Tags[0])
}

func TestParseFencedCode(t *testing.T) {
	raw := "/// Usage:\n/// ```\n/// @Inject\n///\n/// Foo foo;\n/// ```\n/// @since 1.0"
	c, err := Parse(raw, Line)
	require.NoError(t, err)
	assert.Equal(t, []string{"```", "@Inject", "", "Foo foo;", "```"}, c.Body)
	assert.Equal(t, []TagEntry{{Name: "since", Args: []string{"1.0"}}}, c.Tags)
}

func TestParseTagsOnly(t *testing.T) {
	c, err := Parse("/**\n * @ignore\n */", Block)
	require.NoError(t, err)
	assert.Empty(t, c.Headline)
	assert.Nil(t, c.Body)
	assert.True(t, c.HasTag("ignore"))
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		n    Notation
	}{
		{"unterminated block", "/** never closed", Block},
		{"no opening", "text */", Block},
		{"closed early", "/** a */ b */", Block},
		{"mixed line markers", "/// a\n// b", Line},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.n)
			var perr *StructuralParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.n.Name(), perr.Notation)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse("   ", Line)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestParsePlain(t *testing.T) {
	c, err := Parse("Already stripped.\n\n@desc short", Plain)
	require.NoError(t, err)
	assert.Equal(t, "Already stripped.", c.Headline)
	assert.Equal(t, "short", c.Tags[0].Text())
}

func TestDetect(t *testing.T) {
	assert.Equal(t, Line, Detect("  /// x"))
	assert.Equal(t, Block, Detect("\n/** x */"))
	assert.Equal(t, Plain, Detect("x"))
}

func TestCommentTagLookups(t *testing.T) {
	c, err := Parse("/**\n * @module x\n * a\n * @module y\n * @desc d\n */", Block)
	require.NoError(t, err)

	tag, ok := c.Tag("module")
	require.True(t, ok)
	assert.Equal(t, "x\na", tag.Text())
	assert.Len(t, c.TagsNamed("module"), 2)
	assert.False(t, c.HasTag("missing"))
}
