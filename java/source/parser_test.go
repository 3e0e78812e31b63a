package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/saidoc/java"
)

const fixtures = "../../testdata"

func parseFixture(t *testing.T, path string) *File {
	t.Helper()
	src, err := os.ReadFile(filepath.Join(fixtures, path))
	require.NoError(t, err)
	f, err := ParseFile(path, string(src))
	require.NoError(t, err)
	return f
}

func TestSingleLineJavadoc(t *testing.T) {
	f, err := ParseFile("Test.java", `package com.example;

/** A single-line javadoc */ public class Test {
    /** Field doc */ private String name;
    /** Method doc */ public void test() {}
}
`)
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)
	cls := f.Classes[0]

	assert.Equal(t, "com.example.Test", cls.Name)
	assert.Equal(t, "/** A single-line javadoc */", cls.Javadoc)
	require.Len(t, cls.Fields, 1)
	assert.Equal(t, "/** Field doc */", cls.Fields[0].Javadoc)
	assert.Equal(t, "java.lang.String", cls.Fields[0].Type.Name)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "/** Method doc */", cls.Methods[0].Javadoc)
	assert.True(t, cls.Methods[0].HasBody)
}

func TestLineCommentDocs(t *testing.T) {
	f, err := ParseFile("Docs.java", `package com.example;

// not documentation
/// First line
/// second line
public class Docs {
    /// stale

    /// field doc
    private int a; // trailing
    // plain comment
    private int b;
    private int c; /// not a doc of d
    private int d;
}
`)
	require.NoError(t, err)
	cls := f.Classes[0]

	assert.Equal(t, "/// First line\n/// second line", cls.Javadoc)
	a, _ := cls.Field("a")
	assert.Equal(t, "/// field doc", a.Javadoc)
	assert.Equal(t, "trailing", a.EOLComment)
	b, _ := cls.Field("b")
	assert.Empty(t, b.Javadoc)
	d, _ := cls.Field("d")
	assert.Empty(t, d.Javadoc)
}

func TestHugeModel(t *testing.T) {
	f := parseFixture(t, "src/com/itangcent/model/HugeModel.java")
	require.Len(t, f.Classes, 1)
	cls := f.Classes[0]

	assert.Equal(t, "com.itangcent.model", f.Package)
	assert.Equal(t, "com.itangcent.model.HugeModel", cls.Name)
	assert.Equal(t, java.VisibilityPackage, cls.Visibility)

	var names []string
	for _, field := range cls.Fields {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{
		"a", "b", "c", "d", "e", "r", "ignoreByGetter", "ignoreBySetter",
		"candidates", "version", "myNoArgConstant", "userInfo",
	}, names)

	e, _ := cls.Field("e")
	assert.Empty(t, e.Javadoc)
	assert.Equal(t, "E is a mathematical constant approximately equal to 2.71828", e.EOLComment)

	r, _ := cls.Field("r")
	assert.Contains(t, r.Javadoc, "eighteenth letter")
	assert.Equal(t, "It's before s", r.EOLComment)

	ignored, _ := cls.Field("ignoreByGetter")
	assert.Empty(t, ignored.Javadoc)

	candidates, _ := cls.Field("candidates")
	assert.Equal(t, "java.util.List<com.itangcent.constant.JavaVersion>", candidates.Type.String())

	user, _ := cls.Field("userInfo")
	assert.Equal(t, "com.itangcent.model.UserInfo", user.Type.Name)

	getters := cls.MethodsNamed("getIgnoreByGetter")
	require.Len(t, getters, 1)
	assert.Contains(t, getters[0].Javadoc, "@ignore")
	assert.Equal(t, "java.lang.String", getters[0].ReturnType.Name)

	methodA := cls.MethodsNamed("methodA")
	require.Len(t, methodA, 1)
	require.Len(t, methodA[0].Parameters, 2)
	assert.Equal(t, "int", methodA[0].Parameters[1].Type.Name)
}

func TestGenericClass(t *testing.T) {
	f := parseFixture(t, "src/com/itangcent/model/Result.java")
	cls := f.Classes[0]

	assert.Equal(t, []string{"T"}, cls.TypeParameterNames())
	require.Len(t, cls.Interfaces, 1)
	assert.Equal(t, "com.itangcent.model.IResult", cls.Interfaces[0].Name)

	data, _ := cls.Field("data")
	assert.True(t, data.Type.TypeVariable)
	assert.Equal(t, "T", data.Type.Name)
	assert.Equal(t, "The response data", data.EOLComment)

	code, _ := cls.Field("code")
	assert.Equal(t, "java.lang.Integer", code.Type.Name)

	extra, _ := cls.Field("extra")
	assert.Equal(t, "java.util.Map", extra.Type.Name)

	require.Len(t, cls.Constructors, 2)
	assert.Len(t, cls.Constructors[1].Parameters, 3)

	success := cls.MethodsNamed("success")
	require.Len(t, success, 1)
	assert.True(t, success[0].IsStatic)
	assert.Equal(t, "com.itangcent.model.Result<T>", success[0].ReturnType.String())
	assert.True(t, success[0].Parameters[0].Type.TypeVariable)
}

func TestEnumConstants(t *testing.T) {
	f := parseFixture(t, "src/com/itangcent/constant/MyConstant.java")
	cls := f.Classes[0]
	require.True(t, cls.IsEnum())

	var names []string
	for _, ec := range cls.EnumConstants {
		names = append(names, ec.Name)
	}
	assert.Equal(t, []string{"ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN"}, names)

	two := cls.EnumConstants[1]
	assert.Equal(t, []string{`"b"`, "2.2f", `"-s"`}, two.Arguments)
	assert.True(t, two.HasArgList)
	assert.Equal(t, 1, two.Ordinal)
	assert.Contains(t, two.Javadoc, "2nd")

	seven := cls.EnumConstants[6]
	assert.False(t, seven.HasArgList)
	assert.Empty(t, seven.Arguments)

	require.Len(t, cls.Constructors, 7)
	variadic := cls.Constructors[4]
	assert.True(t, variadic.IsVarargs)
	assert.Equal(t, "float[]", variadic.Parameters[1].Type.String())
	assert.Contains(t, variadic.Body, "for (float v : values)")
	assert.Equal(t, java.VisibilityPrivate, variadic.Visibility)
}

func TestEnumEmptySlot(t *testing.T) {
	src, err := os.ReadFile(filepath.Join(fixtures, "broken/MyConstant.java"))
	require.NoError(t, err)

	f, err := ParseFile("MyConstant.java", string(src))
	require.Error(t, err)

	var structural *StructuralParseError
	require.True(t, errors.As(err, &structural))
	assert.Equal(t, "com.itangcent.constant.MyConstant", structural.Class)
	assert.Equal(t, 33, structural.Line)
	assert.Empty(t, f.Classes)
}

func TestEnumEmptySlotKeepsSiblings(t *testing.T) {
	f, err := ParseFile("Holder.java", `package p;
public class Holder {
    enum Bad { A,, B }
    enum Good { X, Y, }
    private Good good;
}
`)
	require.Error(t, err)

	var names []string
	for _, c := range f.Classes {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"p.Holder", "p.Holder.Good"}, names)
	assert.Equal(t, []string{"p.Holder.Good"}, f.Classes[0].InnerClasses)
	assert.Len(t, f.Classes[1].EnumConstants, 2)

	good, _ := f.Classes[0].Field("good")
	assert.Equal(t, "p.Holder.Good", good.Type.Name)
}

func TestNestedAndGenericDeclarations(t *testing.T) {
	f, err := ParseFile("Outer.java", `package com.example;

import java.util.Map;
import java.util.List;

@SuppressWarnings("unchecked")
public class Outer<K extends Comparable<K>, V> extends Base<Map<K, List<V>>> implements java.io.Serializable {
    private Map<String, List<Map<K, V>>> nested;
    private int a = 1, b[] = {1, 2}, c;
    private Map<String, Integer> counts = new HashMap<String, Integer>(), other;
    static { init(); }

    public <T extends Number> T convert(final T value, String... rest) throws Exception {
        return value;
    }

    public static class Inner {
        private Entry entry;
        private Outer.Inner self;
    }

    public static class Entry {}

    interface Callback {
        int LIMIT = 3;
        void call(Map.Entry<String, ?> e);
        default boolean enabled() { return true; }
    }

    record Point(int x, int y) {
        Point {
            if (x < 0) throw new IllegalArgumentException();
        }
    }
}
`)
	require.NoError(t, err)

	var names []string
	for _, c := range f.Classes {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"com.example.Outer",
		"com.example.Outer.Inner",
		"com.example.Outer.Entry",
		"com.example.Outer.Callback",
		"com.example.Outer.Point",
	}, names)

	outer := f.Classes[0]
	require.Len(t, outer.TypeParameters, 2)
	assert.Equal(t, "java.lang.Comparable<K>", outer.TypeParameters[0].Bounds[0].String())
	require.NotNil(t, outer.SuperType)
	assert.Equal(t, "com.example.Base<java.util.Map<K,java.util.List<V>>>", outer.SuperType.String())
	assert.Equal(t, "java.io.Serializable", outer.Interfaces[0].Name)

	nested, _ := outer.Field("nested")
	assert.Equal(t, "java.util.Map<java.lang.String,java.util.List<java.util.Map<K,V>>>", nested.Type.String())

	var fields []string
	for _, field := range outer.Fields {
		fields = append(fields, field.Name+":"+field.Type.String())
	}
	assert.Equal(t, []string{
		"nested:java.util.Map<java.lang.String,java.util.List<java.util.Map<K,V>>>",
		"a:int", "b:int[]", "c:int",
		"counts:java.util.Map<java.lang.String,java.lang.Integer>",
		"other:java.util.Map<java.lang.String,java.lang.Integer>",
	}, fields)

	convert := outer.MethodsNamed("convert")
	require.Len(t, convert, 1)
	assert.True(t, convert[0].ReturnType.TypeVariable)
	assert.True(t, convert[0].IsVarargs)
	assert.True(t, convert[0].Parameters[0].IsFinal)
	assert.Equal(t, "java.lang.String[]", convert[0].Parameters[1].Type.String())

	inner := f.Classes[1]
	entry, _ := inner.Field("entry")
	assert.Equal(t, "com.example.Outer.Entry", entry.Type.Name)
	self, _ := inner.Field("self")
	assert.Equal(t, "com.example.Outer.Inner", self.Type.Name)

	callback := f.Classes[3]
	assert.True(t, callback.IsInterface())
	limit, _ := callback.Field("LIMIT")
	assert.True(t, limit.IsStatic)
	call := callback.MethodsNamed("call")
	require.Len(t, call, 1)
	assert.True(t, call[0].IsAbstract)
	assert.Equal(t, "java.util.Map.Entry<java.lang.String,?>", call[0].Parameters[0].Type.String())
	assert.False(t, callback.MethodsNamed("enabled")[0].IsAbstract)

	point := f.Classes[4]
	assert.Equal(t, java.ClassKindRecord, point.Kind)
	assert.Len(t, point.Fields, 2)
	assert.True(t, point.IsStatic)
}

func TestParseErrorRecovers(t *testing.T) {
	f, err := ParseFile("Broken.java", `package p;
public class Broken {
    private int ok;
    private int = 3;
    private String after;
}
`)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 4, parseErr.Line)

	require.Len(t, f.Classes, 1)
	_, ok := f.Classes[0].Field("ok")
	assert.True(t, ok)
	_, ok = f.Classes[0].Field("after")
	assert.True(t, ok)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"com.x.Result<com.x.UserInfo>", "com.x.Result<com.x.UserInfo>"},
		{"int[][]", "int[][]"},
		{"java.util.Map<String, java.util.List<Long>>", "java.util.Map<String,java.util.List<Long>>"},
		{"List<? extends Number>", "List<? extends Number>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseType("List<String> extra")
	assert.Error(t, err)
}

func TestParseRecordComponentComments(t *testing.T) {
	f, err := ParseFile("Pair.java", `package p;
/**
 * @param left first
 */
public record Pair(
        String left, // the left one
        /** the right one */
        @Deprecated String right,
        int... rest
) {}
`)
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)
	pair := f.Classes[0]
	assert.Equal(t, java.ClassKindRecord, pair.Kind)
	assert.Contains(t, pair.Javadoc, "@param left first")

	left, ok := pair.Field("left")
	require.True(t, ok)
	assert.Equal(t, "the left one", left.EOLComment)
	assert.Empty(t, left.Javadoc)

	right, ok := pair.Field("right")
	require.True(t, ok)
	assert.Equal(t, "/** the right one */", right.Javadoc)
	assert.Empty(t, right.EOLComment)

	rest, ok := pair.Field("rest")
	require.True(t, ok)
	assert.Equal(t, "int[]", rest.Type.String())
	assert.Equal(t, java.VisibilityPrivate, rest.Visibility)
}
