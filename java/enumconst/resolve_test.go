package enumconst

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/source"
)

func loadEnum(t *testing.T, name string) *java.ClassModel {
	t.Helper()
	path := filepath.Join("../../testdata/src/com/itangcent/constant", name+".java")
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := source.ParseFile(path, string(src))
	require.NoError(t, err)
	require.NotEmpty(t, f.Classes)
	return f.Classes[0]
}

func param(name, typ string) java.ParameterModel {
	return java.ParameterModel{Name: name, Type: java.TypeModel{Name: typ}}
}

func ctor(params ...java.ParameterModel) java.MethodModel {
	m := java.MethodModel{IsConstructor: true, Parameters: params}
	if n := len(params); n > 0 && params[n-1].IsVarargs {
		m.IsVarargs = true
	}
	return m
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		text  string
		kind  LiteralKind
		value any
	}{
		{`"a"`, LiteralString, "a"},
		{`"tab\there"`, LiteralString, "tab\there"},
		{`'x'`, LiteralChar, 'x'},
		{"42", LiteralInt, int64(42)},
		{"-7", LiteralInt, int64(-7)},
		{"0x1F", LiteralInt, int64(31)},
		{"010", LiteralInt, int64(8)},
		{"1_000", LiteralInt, int64(1000)},
		{"5L", LiteralLong, int64(5)},
		{"1.1f", LiteralFloat, float32(1.1)},
		{"2.5", LiteralDouble, 2.5},
		{"-3d", LiteralDouble, -3.0},
		{"true", LiteralBoolean, true},
		{"null", LiteralNull, nil},
		{"Constants.MAX", LiteralExpression, "Constants.MAX"},
		{"1 + 2", LiteralExpression, "1 + 2"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lit := ParseLiteral(tt.text)
			assert.Equal(t, tt.kind, lit.Kind)
			assert.Equal(t, tt.value, lit.Value)
		})
	}
}

func TestResolveMyConstant(t *testing.T) {
	class := loadEnum(t, "MyConstant")

	tests := []struct {
		constant string
		params   []string
		variadic bool
	}{
		{"ONE", []string{"java.lang.String", "float"}, false},
		{"TWO", []string{"java.lang.String", "float", "java.lang.String"}, false},
		{"THREE", []string{"float", "java.lang.String"}, false},
		{"FOUR", []string{"java.lang.String"}, false},
		{"FIVE", []string{"float"}, false},
		{"SIX", []string{"java.lang.String", "float[]"}, true},
		{"SEVEN", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.constant, func(t *testing.T) {
			ec, ok := class.EnumConstant(tt.constant)
			require.True(t, ok)

			res, err := Resolve(*ec, class.Constructors)
			require.NoError(t, err)
			require.NotNil(t, res.Constructor)

			var types []string
			for _, p := range res.Constructor.Parameters {
				types = append(types, p.Type.String())
			}
			assert.Equal(t, tt.params, types)
			assert.Equal(t, tt.variadic, len(res.Params) > 0 && res.Params[len(res.Params)-1].Variadic)
		})
	}
}

func TestResolveCollectsVariadicArguments(t *testing.T) {
	class := loadEnum(t, "MyConstant")
	six, _ := class.EnumConstant("SIX")

	res, err := Resolve(*six, class.Constructors)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "f",
		"values": []any{float32(6.6), float32(7.7), float32(8.8)},
	}, res.Bindings())
}

func TestResolveEnumValues(t *testing.T) {
	class := loadEnum(t, "MyConstant")

	values, err := ResolveEnum(class)
	require.NoError(t, err)

	want := []struct {
		name  string
		value float64
	}{
		{"a", 1.1},
		{"b-s", 4.4},
		{"c", 3.3},
		{"d", 0},
		{"default:5.5", 5.5},
		{"f", 23.1},
		{"default", 0},
	}
	require.Len(t, values, len(want))
	for i, w := range want {
		assert.Equal(t, i, values[i].Ordinal)
		assert.Equal(t, map[string]any{"name": w.name, "value": w.value}, values[i].Fields, values[i].Name)
	}
}

func TestResolveEnumAssignsWithoutThis(t *testing.T) {
	class := loadEnum(t, "Level")

	values, err := ResolveEnum(class)
	require.NoError(t, err)
	require.Len(t, values, 4)
	assert.Equal(t, "ERROR", values[0].Name)
	assert.Equal(t, map[string]any{"levelInt": int64(40), "levelStr": "ERROR"}, values[0].Fields)
	assert.Equal(t, map[string]any{"levelInt": int64(10), "levelStr": "DEBUG"}, values[3].Fields)
}

func TestResolveEnumWithoutConstructor(t *testing.T) {
	class := loadEnum(t, "MyNoArgConstant")

	values, err := ResolveEnum(class)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, "A", values[0].Name)
	assert.Empty(t, values[0].Fields)
	assert.Equal(t, 2, values[2].Ordinal)
}

func TestNoMatchingConstructor(t *testing.T) {
	constant := java.EnumConstantModel{Name: "BAD", Arguments: []string{"true", `"x"`}, HasArgList: true}
	candidates := []java.MethodModel{
		ctor(param("name", "java.lang.String")),
		ctor(param("value", "float"), param("name", "java.lang.String")),
	}

	_, err := Resolve(constant, candidates)
	var noMatch *NoMatchingConstructorError
	require.True(t, errors.As(err, &noMatch))
	assert.Equal(t, "BAD", noMatch.Constant)
	assert.Equal(t, []string{"true", `"x"`}, noMatch.Args)

	_, err = Resolve(java.EnumConstantModel{Name: "X", Arguments: []string{"1"}}, nil)
	assert.True(t, errors.As(err, &noMatch))
}

func TestResolveEnumKeepsSiblingsOnFailure(t *testing.T) {
	class := &java.ClassModel{
		Name: "p.Color",
		Kind: java.ClassKindEnum,
		EnumConstants: []java.EnumConstantModel{
			{Name: "RED", Arguments: []string{"1"}, HasArgList: true},
			{Name: "BAD", Arguments: []string{`"x"`}, HasArgList: true, Ordinal: 1},
		},
		Constructors: []java.MethodModel{{
			IsConstructor: true,
			Parameters:    []java.ParameterModel{param("code", "int")},
			Body:          "this.code = code;",
			HasBody:       true,
		}},
	}

	values, err := ResolveEnum(class)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p.Color.BAD")
	require.Len(t, values, 2)
	assert.Equal(t, map[string]any{"code": int64(1)}, values[0].Fields)
	assert.Nil(t, values[1].Fields)
}

func TestResolveTieBreaksBySourceOrder(t *testing.T) {
	constant := java.EnumConstantModel{Name: "X", Arguments: []string{"1"}, HasArgList: true}
	candidates := []java.MethodModel{
		ctor(param("l", "long")),
		ctor(param("d", "double")),
	}

	res, err := Resolve(constant, candidates)
	require.NoError(t, err)
	assert.Same(t, &candidates[0], res.Constructor)

	candidates[0], candidates[1] = candidates[1], candidates[0]
	res, err = Resolve(constant, candidates)
	require.NoError(t, err)
	assert.Equal(t, "d", res.Constructor.Parameters[0].Name)
}

func TestResolvePrefersCheaperConversions(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"exact primitive", "1", "i"},
		{"widening before boxing", "1L", "d"},
		{"boxing", "true", "o"},
		{"null to reference", "null", "s"},
	}
	candidates := []java.MethodModel{
		ctor(param("o", "java.lang.Object")),
		ctor(param("i", "int")),
		ctor(param("s", "java.lang.String")),
		ctor(param("d", "double")),
		ctor(param("b", "java.lang.Boolean")),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(java.EnumConstantModel{Name: "X", Arguments: []string{tt.arg}}, candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Constructor.Parameters[0].Name)
		})
	}
}

func TestResolvePrefersFixedArity(t *testing.T) {
	varargs := param("rest", "int")
	varargs.IsVarargs = true
	varargs.Type.ArrayDepth = 1
	candidates := []java.MethodModel{
		ctor(varargs),
		ctor(param("a", "java.lang.Object")),
	}

	res, err := Resolve(java.EnumConstantModel{Name: "X", Arguments: []string{"1"}}, candidates)
	require.NoError(t, err)
	assert.Equal(t, "a", res.Constructor.Parameters[0].Name)

	res, err = Resolve(java.EnumConstantModel{Name: "Y", Arguments: []string{"1", "2"}}, candidates)
	require.NoError(t, err)
	assert.Equal(t, "rest", res.Constructor.Parameters[0].Name)
	assert.Equal(t, []any{int64(1), int64(2)}, res.Params[0].Value)

	res, err = Resolve(java.EnumConstantModel{Name: "Z"}, candidates[:1])
	require.NoError(t, err)
	assert.Equal(t, []any{}, res.Params[0].Value)

	stringRest := param("rest", "java.lang.String")
	stringRest.IsVarargs = true
	stringRest.Type.ArrayDepth = 1
	var objects []java.ParameterModel
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		objects = append(objects, param(name, "java.lang.Object"))
	}
	args := []string{`"a"`, `"b"`, `"c"`, `"d"`, `"e"`, `"f"`}

	res, err = Resolve(java.EnumConstantModel{Name: "W", Arguments: args},
		[]java.MethodModel{ctor(stringRest), ctor(objects...)})
	require.NoError(t, err)
	assert.False(t, res.Constructor.IsVarargs)
	assert.Len(t, res.Params, 6)
	assert.Equal(t, "a", res.Params[0].Name)
}
