package enumconst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/saidoc/java"
)

func evaluateBody(t *testing.T, body string, fields []java.FieldModel, params ...Param) (map[string]any, error) {
	t.Helper()
	class := &java.ClassModel{Name: "p.E", Kind: java.ClassKindEnum, Fields: fields}
	res := &ResolvedArgs{
		Constructor: &java.MethodModel{IsConstructor: true, Body: body, HasBody: true},
		Params:      params,
	}
	return Evaluate(class, res)
}

func TestEvaluate(t *testing.T) {
	intField := func(name string) java.FieldModel {
		return java.FieldModel{Name: name, Type: java.TypeModel{Name: "int"}}
	}

	tests := []struct {
		name   string
		body   string
		fields []java.FieldModel
		params []Param
		want   map[string]any
	}{
		{
			name:   "arithmetic precedence",
			body:   "this.a = 1 + 2 * 3; this.b = (1 + 2) * 3; this.c = 7 / 2; this.d = -a;",
			fields: []java.FieldModel{intField("a"), intField("b"), intField("c"), intField("d")},
			want:   map[string]any{"a": int64(7), "b": int64(9), "c": int64(3), "d": int64(-7)},
		},
		{
			name:   "cast and compound assignment",
			body:   "double x = (double) n / 4; x *= 2; this.v = x; this.n = n; n -= 1; this.m = n;",
			params: []Param{{Name: "n", Type: java.TypeModel{Name: "int"}, Value: int64(5)}},
			want:   map[string]any{"v": 2.5, "n": int64(5), "m": int64(4)},
		},
		{
			name:   "string concatenation",
			body:   `this.label = prefix + ":" + 1 + 2 + String.valueOf(2.0f) + 'c';`,
			params: []Param{{Name: "prefix", Type: java.TypeModel{Name: "java.lang.String"}, Value: "x"}},
			want:   map[string]any{"label": "x:122.0c"},
		},
		{
			name: "enhanced for over block and statement",
			body: `int total = 0;
				for (final int v : values) total += v;
				for (int v : values) { this.last = v; }
				this.total = total;`,
			params: []Param{{Name: "values", Value: []any{int64(1), int64(2), int64(3)}, Variadic: true}},
			want:   map[string]any{"total": int64(6), "last": int64(3)},
		},
		{
			name:   "empty loop skips body",
			body:   "for (int v : values) { this.last = v; } this.count = 0;",
			params: []Param{{Name: "values", Value: []any{}, Variadic: true}},
			want:   map[string]any{"count": int64(0)},
		},
		{
			name:   "field typed assignment",
			body:   "this.ratio = 3; // three\n this.flag = true;",
			fields: []java.FieldModel{{Name: "ratio", Type: java.TypeModel{Name: "float"}}},
			want:   map[string]any{"ratio": float32(3), "flag": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluateBody(t, tt.body, tt.fields, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateUnsupported(t *testing.T) {
	bodies := []string{
		"this.code = lookup(code);",
		"if (code > 0) { this.code = code; }",
		"this.code = Constants.CODE;",
		"this.code = 1 / 0;",
		"this.total += 1;",
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := evaluateBody(t, body, nil, Param{Name: "code", Value: int64(1)})
			assert.True(t, errors.Is(err, ErrUnsupported), "%v", err)
		})
	}
}

func TestEvaluateFallsBackToBindings(t *testing.T) {
	class := &java.ClassModel{
		Name: "p.Status",
		Kind: java.ClassKindEnum,
		EnumConstants: []java.EnumConstantModel{
			{Name: "OK", Arguments: []string{"200", `"ok"`}, HasArgList: true},
		},
		Constructors: []java.MethodModel{{
			IsConstructor: true,
			Parameters:    []java.ParameterModel{param("code", "int"), param("desc", "java.lang.String")},
			Body:          "this.code = code; register(this);",
			HasBody:       true,
		}},
		Methods: []java.MethodModel{{
			Name:       "getDescription",
			ReturnType: java.TypeModel{Name: "java.lang.String"},
			Body:       "\n        return desc;\n    ",
			HasBody:    true,
		}},
	}

	values, err := ResolveEnum(class)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"code":        int64(200),
		"desc":        "ok",
		"description": "ok",
	}, values[0].Fields)
}

func TestJavaString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{float32(5), "5.0"},
		{float32(5.5), "5.5"},
		{float32(0.1), "0.1"},
		{1e10, "1.0E10"},
		{1.5e-5, "1.5E-5"},
		{int64(-3), "-3"},
		{'a', "a"},
		{nil, "null"},
		{[]any{int64(1), "b"}, "[1, b]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, javaString(tt.value))
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(map[string]any{
		"f": float32(6.6) + float32(7.7) + float32(8.8),
		"c": 'x',
		"l": []any{float32(1.1)},
	})
	assert.Equal(t, map[string]any{"f": 23.1, "c": "x", "l": []any{1.1}}, got)
}
