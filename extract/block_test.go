package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlock(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "fenced with json tag",
			raw:    "Here you go:\n" + fence + "json\n{\"a\":1}\n" + fence + "\nEnjoy {x}",
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "fenced with upper case tag glued to brace",
			raw:    fence + "JSON{\"a\":1}" + fence,
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "fenced without tag",
			raw:    "x " + fence + "\n{\"a\":1}\n" + fence + " y " + fence + "{\"b\":2}" + fence,
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "unclosed fence falls back to braces",
			raw:    "oops " + fence + "json {\"a\":1}",
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "braces fallback is greedy",
			raw:    `prefix {"a":1} middle {junk} tail`,
			want:   `{"a":1} middle {junk}`,
			wantOK: true,
		},
		{
			name:   "no braces",
			raw:    "I could not think of any questions.",
			wantOK: false,
		},
		{
			name:   "closing before opening",
			raw:    "} then {",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Block(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockKeepsNonTagFirstWord(t *testing.T) {
	got, ok := Block(fence + "json: {\"a\":1}" + fence)
	assert.True(t, ok)
	assert.Equal(t, `json: {"a":1}`, got)
}
