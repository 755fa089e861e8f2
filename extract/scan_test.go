package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalancedSpanIgnoresBracketsInStrings(t *testing.T) {
	s := `x ["a ] b", "c [[", ["d"]] tail ]`
	end, ok := BalancedSpan(s, 2)
	require.True(t, ok)
	assert.Equal(t, `["a ] b", "c [[", ["d"]]`, s[2:end+1])
}

func TestBalancedSpanEscapedQuote(t *testing.T) {
	s := `["say \"]\" now"] rest`
	end, ok := BalancedSpan(s, 0)
	require.True(t, ok)
	assert.Equal(t, `["say \"]\" now"]`, s[:end+1])
}

func TestBalancedSpanUnterminated(t *testing.T) {
	_, ok := BalancedSpan(`[1, [2, 3]`, 0)
	assert.False(t, ok)

	_, ok = BalancedSpan(`abc`, 0)
	assert.False(t, ok)

	_, ok = BalancedSpan(`[]`, 5)
	assert.False(t, ok)
}

func TestSplitTopLevel(t *testing.T) {
	s := `[{"a":"}"}, } {"b":{"c":1}}, {"d":"{"}, {"unterminated":`
	got := SplitTopLevel(s, '{')
	assert.Equal(t, []string{`{"a":"}"}`, `{"b":{"c":1}}`, `{"d":"{"}`}, got)
}

func TestFindFieldSkipsNestedAndValueMatches(t *testing.T) {
	obj := `{"options":["text","b"],"meta":{"text":"inner"},"text":"outer"}`
	v, ok := StringField(obj, "text")
	require.True(t, ok)
	assert.Equal(t, "outer", v)

	_, ok = FindKey(`{"meta":{"text":"inner"}}`, "text")
	assert.True(t, ok)
	_, ok = FindField(`{"meta":{"text":"inner"}}`, "text")
	assert.False(t, ok)
}

func TestStringFieldEscapes(t *testing.T) {
	obj := `{"text" : "line\nnext \"q\" \\ \u05e9 \ud83d\ude00 \/"}`
	v, ok := StringField(obj, "text")
	require.True(t, ok)
	assert.Equal(t, "line\nnext \"q\" \\ ש 😀 /", v)
}

func TestStringFieldNotAString(t *testing.T) {
	_, ok := StringField(`{"text": 12}`, "text")
	assert.False(t, ok)

	_, ok = StringField(`{"text": "open`, "text")
	assert.False(t, ok)
}

func TestStringArrayField(t *testing.T) {
	v, ok := StringArrayField(`{"options": ["a [b] \"c\"", 3, "d,e", null]}`, "options")
	require.True(t, ok)
	assert.Equal(t, []string{`a [b] "c"`, "d,e"}, v)

	v, ok = StringArrayField(`{"options": []}`, "options")
	require.True(t, ok)
	assert.Empty(t, v)

	_, ok = StringArrayField(`{"options": "a"}`, "options")
	assert.False(t, ok)

	_, ok = StringArrayField(`{"options": ["a", "b"`, "options")
	assert.False(t, ok)
}
