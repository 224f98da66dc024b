package etag

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexTag = regexp.MustCompile(`^[0-9a-f]{64}$`)

func mustGenerate(t *testing.T, v any) string {
	t.Helper()
	tag, err := Generate(v)
	require.NoError(t, err)
	return tag
}

func TestGenerate_SameInputSameTag(t *testing.T) {
	data := map[string]any{"foo": "bar", "value": 42}

	first := mustGenerate(t, data)
	second := mustGenerate(t, data)

	assert.Equal(t, first, second)
	assert.Regexp(t, hexTag, first)
	assert.Len(t, first, Size)
}

func TestGenerate_DifferentInputDifferentTag(t *testing.T) {
	assert.NotEqual(t,
		mustGenerate(t, map[string]any{"foo": "bar"}),
		mustGenerate(t, map[string]any{"foo": "baz"}),
	)
}

func TestGenerate_KeyOrderDoesNotMatter(t *testing.T) {
	type ordered struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	type reversed struct {
		Price float64 `json:"price"`
		Name  string  `json:"name"`
	}

	a := mustGenerate(t, ordered{Name: "Lamp", Price: 19.99})
	b := mustGenerate(t, reversed{Price: 19.99, Name: "Lamp"})
	c := mustGenerate(t, map[string]any{"price": 19.99, "name": "Lamp"})

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestGenerate_NestedValues(t *testing.T) {
	a := map[string]any{"data": []any{map[string]any{"id": "1", "tags": []string{"x"}}}}
	b := map[string]any{"data": []any{map[string]any{"tags": []string{"x"}, "id": "1"}}}
	changed := map[string]any{"data": []any{map[string]any{"id": "1", "tags": []string{"y"}}}}

	assert.Equal(t, mustGenerate(t, a), mustGenerate(t, b))
	assert.NotEqual(t, mustGenerate(t, a), mustGenerate(t, changed))
}

func TestGenerate_LargeNumbersKeepPrecision(t *testing.T) {
	assert.NotEqual(t,
		mustGenerate(t, map[string]any{"n": int64(9007199254740993)}),
		mustGenerate(t, map[string]any{"n": int64(9007199254740992)}),
	)
}

func TestGenerate_Unserializable(t *testing.T) {
	_, err := Generate(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestCanonicalize(t *testing.T) {
	out, err := Canonicalize(map[string]any{"b": 1, "a": map[string]any{"d": true, "c": nil}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"c":null,"d":true},"b":1}`, string(out))
}

func TestMatch(t *testing.T) {
	tag := mustGenerate(t, map[string]any{"foo": "bar"})

	assert.True(t, Match(Quote(tag), tag))
	assert.True(t, Match("W/"+Quote(tag), tag))
	assert.True(t, Match(`"other", `+Quote(tag), tag))
	assert.True(t, Match("*", tag))
	assert.False(t, Match(`"other"`, tag))
	assert.False(t, Match("", tag))
}
