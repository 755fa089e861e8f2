package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatToken(t *testing.T) {
	assert.Equal(t, "sv|abc-1|q|2|o|3", FormatToken("abc-1", 2, 3))
	assert.Equal(t, "sv|x|q|0|o|1", Token{SurveyID: "x", Option: 1}.String())
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Token
		ok   bool
	}{
		{name: "valid", raw: "sv|abc|q|1|o|3", want: Token{SurveyID: "abc", Question: 1, Option: 3}, ok: true},
		{name: "round trip", raw: FormatToken("id-9", 0, 0), want: Token{SurveyID: "id-9"}, ok: true},
		{name: "wrong prefix", raw: "xx|abc|q|1|o|3"},
		{name: "missing field", raw: "sv|abc|q|1|o"},
		{name: "extra field", raw: "sv|abc|q|1|o|3|x"},
		{name: "empty id", raw: "sv||q|1|o|3"},
		{name: "wrong tags", raw: "sv|abc|o|1|q|3"},
		{name: "negative", raw: "sv|abc|q|-1|o|3"},
		{name: "signed", raw: "sv|abc|q|+1|o|3"},
		{name: "not a number", raw: "sv|abc|q|one|o|3"},
		{name: "empty index", raw: "sv|abc|q||o|3"},
		{name: "empty", raw: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseToken(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
