package survey

import (
	"math"
	"sort"
	"time"
)

// RankedOption is one option's share of a question's votes.
type RankedOption struct {
	Option  string  `json:"option"`
	Votes   int     `json:"votes"`
	Percent float64 `json:"percent"`
}

// QuestionResult is the ranked outcome of one question.
type QuestionResult struct {
	Text   string         `json:"text"`
	Total  int            `json:"total"`
	Ranked []RankedOption `json:"ranked"`
}

// Result is the frozen outcome of a closed survey.
type Result struct {
	SurveyID     string           `json:"survey_id"`
	CreatorID    int64            `json:"creator_id"`
	CreatorName  string           `json:"creator_name"`
	Reason       Reason           `json:"reason"`
	Respondents  int              `json:"respondents"`
	Participants int              `json:"participants"`
	OpenedAt     time.Time        `json:"opened_at"`
	ClosedAt     time.Time        `json:"closed_at"`
	Questions    []QuestionResult `json:"questions"`
}

// Rank orders tallies by percentage, highest first. Percentages are rounded
// to one decimal and are all 0 when nobody voted. Equal percentages keep
// their declaration order.
func Rank(tallies []Tally) []RankedOption {
	total := 0
	for _, t := range tallies {
		total += t.Votes
	}

	out := make([]RankedOption, len(tallies))
	for i, t := range tallies {
		out[i] = RankedOption{Option: t.Option, Votes: t.Votes, Percent: percent(t.Votes, total)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	return out
}

func percent(votes, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)*100/float64(total)*10) / 10
}
