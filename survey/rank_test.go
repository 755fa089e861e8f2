package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		tallies []Tally
		want    []RankedOption
	}{
		{
			name:    "three to one",
			tallies: []Tally{{"B", 1}, {"A", 3}},
			want:    []RankedOption{{"A", 3, 75}, {"B", 1, 25}},
		},
		{
			name:    "no votes keeps declaration order",
			tallies: []Tally{{"A", 0}, {"B", 0}},
			want:    []RankedOption{{"A", 0, 0}, {"B", 0, 0}},
		},
		{
			name:    "ties are stable",
			tallies: []Tally{{"C", 1}, {"A", 2}, {"B", 1}, {"D", 2}},
			want:    []RankedOption{{"A", 2, 33.3}, {"D", 2, 33.3}, {"C", 1, 16.7}, {"B", 1, 16.7}},
		},
		{
			name:    "thirds round to one decimal",
			tallies: []Tally{{"A", 1}, {"B", 2}},
			want:    []RankedOption{{"B", 2, 66.7}, {"A", 1, 33.3}},
		},
		{
			name:    "empty",
			tallies: nil,
			want:    []RankedOption{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(tt.tallies))
		})
	}
}
