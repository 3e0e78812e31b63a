package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/javadoc"
)

func linkTestIndex() (*java.Index, *java.ClassModel) {
	object := &java.ClassModel{
		Name:       "java.lang.Object",
		SimpleName: "Object",
		Package:    "java.lang",
		Methods: []java.MethodModel{
			{Name: "equals"},
			{Name: "hashCode"},
			{Name: "toString"},
		},
	}
	userInfo := &java.ClassModel{
		Name:       "com.itangcent.model.UserInfo",
		SimpleName: "UserInfo",
		Package:    "com.itangcent.model",
		Fields:     []java.FieldModel{{Name: "name"}},
	}
	linkTest := &java.ClassModel{
		Name:       "com.itangcent.cases.LinkTest",
		SimpleName: "LinkTest",
		Package:    "com.itangcent.cases",
		Imports:    []java.ImportModel{{QualifiedName: "com.itangcent.model.UserInfo"}},
		Methods: []java.MethodModel{
			{Name: "testSimpleLinksJep467"},
			{Name: "testBacktickLinks"},
		},
	}
	return java.NewIndex(object, userInfo, linkTest), linkTest
}

func parse(t *testing.T, raw string) javadoc.Comment {
	t.Helper()
	c, err := javadoc.Parse(raw, nil)
	require.NoError(t, err)
	return c
}

func userInfoSymbol() *java.Symbol {
	return &java.Symbol{Kind: java.SymbolClass, Name: "UserInfo", QualifiedName: "com.itangcent.model.UserInfo"}
}

func TestResolveSimpleLinks(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	raw := `/// Test simple links with JEP 467 style
/// See [UserInfo] for user information {@link UserInfo}
/// See [Model] for model information {@link Model}`

	refs := r.Resolve(parse(t, raw), scope)
	require.Len(t, refs, 4)

	resolved := Resolution{State: ResolvedType, Symbol: userInfoSymbol()}
	for _, ref := range refs[:2] {
		assert.Equal(t, "UserInfo", ref.TargetText)
		assert.Equal(t, TypeLink, ref.Kind)
		assert.Equal(t, resolved, ref.Resolution)
	}
	assert.Equal(t, "[UserInfo]", refs[0].RawText)
	assert.Equal(t, "{@link UserInfo}", refs[1].RawText)

	for _, ref := range refs[2:] {
		assert.Equal(t, "Model", ref.TargetText)
		assert.Equal(t, Unresolved, ref.Resolution.State)
	}
}

func TestResolveNotationsAgree(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	line := r.Resolve(parse(t, "/// Test method references\n/// See [equals][#equals] for equality comparison {@link #equals}"), scope)
	block := r.Resolve(parse(t, "/**\n * Test method references\n * See [equals][#equals] for equality comparison {@link #equals}\n */"), scope)
	assert.Equal(t, line, block)

	require.Len(t, line, 2)
	for _, ref := range line {
		assert.Equal(t, MemberLink, ref.Kind)
		assert.Equal(t, "#equals", ref.TargetText)
		assert.Equal(t, ResolvedMember, ref.Resolution.State)
		assert.Equal(t, "java.lang.Object#equals", ref.Resolution.Symbol.QualifiedName)
	}
	assert.Equal(t, "equals", line[0].DisplayText)
	assert.Empty(t, line[1].DisplayText)
}

func TestResolveUnresolvedLinks(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	refs := r.Resolve(parse(t, `/**
 * Test unresolved links with Javadoc style
 * See [UnknownClass] for unknown information {@link UnknownClass}
 * See [unknownMethod][#unknownMethod] for unknown method {@link #unknownMethod}
 */`), scope)

	require.Len(t, refs, 4)
	kinds := []Kind{TypeLink, TypeLink, MemberLink, MemberLink}
	for i, ref := range refs {
		assert.Equal(t, kinds[i], ref.Kind, ref.RawText)
		assert.Equal(t, Resolution{State: Unresolved}, ref.Resolution)
	}
}

func TestResolveBacktickLinks(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	refs := r.Resolve(parse(t, `/**
 * Test backtick-wrapped text links
 * See ` + "`hashCode`" + ` for hash code generation {@link #hashCode}
 * The ` + "`UserInfo`" + ` class, ` + "`LinkTest`" + ` itself and ` + "`notAMember`" + ` are plain text.
 */`), scope)

	require.Len(t, refs, 2)
	assert.Equal(t, BacktickLink, refs[0].Kind)
	assert.Equal(t, "hashCode", refs[0].TargetText)
	assert.Equal(t, ResolvedMember, refs[0].Resolution.State)
	assert.Equal(t, MemberLink, refs[1].Kind)
}

func TestResolveExistingLinkTypes(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	refs := r.Resolve(parse(t, `/**
 * Test existing link types
 * See [test] for test information {@link #test}
 * See [text](url) for more information
 * See [ref][ref] for reference information
 * [ref]: url
 * See [text][] for collapsed reference information
 */`), scope)

	require.Len(t, refs, 5)

	assert.Equal(t, TypeLink, refs[0].Kind)
	assert.Equal(t, Unresolved, refs[0].Resolution.State)
	assert.Equal(t, MemberLink, refs[1].Kind)

	assert.Equal(t, Reference{
		RawText:     "[text](url)",
		TargetText:  "url",
		DisplayText: "text",
		Kind:        UrlLink,
		Resolution:  Resolution{State: External, URL: "url"},
		Offset:      refs[2].Offset,
	}, refs[2])

	assert.Equal(t, ReferenceLink, refs[3].Kind)
	assert.Equal(t, "ref", refs[3].TargetText)
	assert.Equal(t, Resolution{State: External, URL: "url"}, refs[3].Resolution)

	assert.Equal(t, "[text][]", refs[4].RawText)
	assert.Equal(t, "text", refs[4].TargetText)
	assert.Equal(t, Unresolved, refs[4].Resolution.State)
}

func TestResolveURLWithParentheses(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		text string
		raw  string
		url  string
	}{
		{"See [Foo](https://en.wikipedia.org/wiki/Foo_(bar)) here.", "[Foo](https://en.wikipedia.org/wiki/Foo_(bar))", "https://en.wikipedia.org/wiki/Foo_(bar)"},
		{"(see [docs](https://x.io/a))", "[docs](https://x.io/a)", "https://x.io/a"},
		{"[m](f(a)g(b))", "[m](f(a)g(b))", "f(a)g(b)"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			refs := r.ResolveText(tt.text, nil)
			require.Len(t, refs, 1)
			assert.Equal(t, UrlLink, refs[0].Kind)
			assert.Equal(t, tt.raw, refs[0].RawText)
			assert.Equal(t, tt.url, refs[0].Resolution.URL)
		})
	}
}

func TestResolveSkipsPreformatted(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	refs := r.Resolve(parse(t, `/**
 * Example
 * <pre>
 *   int[] xs = {@link UserInfo};
 *   [UserInfo]
 * </pre>
 * See [UserInfo].
 */`), scope)

	require.Len(t, refs, 1)
	assert.Equal(t, "[UserInfo]", refs[0].RawText)
	assert.Equal(t, ResolvedType, refs[0].Resolution.State)
}

func TestResolveWithoutTable(t *testing.T) {
	r := NewResolver(nil)
	refs := r.ResolveText("See {@link Foo#bar(String, int) the bar} and `x`.", nil)
	require.Len(t, refs, 1)
	assert.Equal(t, "Foo#bar(String, int)", refs[0].TargetText)
	assert.Equal(t, "the bar", refs[0].DisplayText)
	assert.Equal(t, MemberLink, refs[0].Kind)
	assert.Equal(t, Unresolved, refs[0].Resolution.State)
}

func TestRewrite(t *testing.T) {
	idx, scope := linkTestIndex()
	r := NewResolver(idx)

	c := parse(t, `/**
 * See {@link UserInfo} and [docs][ref].
 * [ref]: https://example.com/docs
 * Unknown {@link Missing}.
 */`)

	out := r.Rewrite(c, scope, func(ref Reference) string {
		switch ref.Resolution.State {
		case ResolvedType:
			return ref.Resolution.Symbol.QualifiedName
		case External:
			return ref.Label() + " <" + ref.Resolution.URL + ">"
		}
		return ref.Label()
	})

	assert.Equal(t, "See com.itangcent.model.UserInfo and docs <https://example.com/docs>.\nUnknown Missing.", out)
}
