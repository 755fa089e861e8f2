package survey

// Question is one survey question with its running tally.
type Question struct {
	Text    string
	Options []string

	// votes is keyed by option label, so two options sharing a label share
	// one tally entry.
	votes map[string]int
}

func newQuestion(text string, options []string) *Question {
	q := &Question{
		Text:    text,
		Options: append([]string(nil), options...),
		votes:   make(map[string]int, len(options)),
	}
	for _, o := range q.Options {
		q.votes[o] = 0
	}
	return q
}

func (q *Question) vote(option int) {
	q.votes[q.Options[option]]++
}

// Tally is the vote count of one distinct option label.
type Tally struct {
	Option string
	Votes  int
}

// tallies lists distinct labels in declaration order.
func (q *Question) tallies() []Tally {
	out := make([]Tally, 0, len(q.Options))
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, Tally{Option: o, Votes: q.votes[o]})
	}
	return out
}
