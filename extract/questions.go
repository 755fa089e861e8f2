// Package extract recovers survey questions from loosely formatted generator
// output. It never fails: anything it cannot read is dropped.
package extract

import "strings"

const (
	questionsKey = "questions"
	textKey      = "text"
	optionsKey   = "options"

	maxQuestions = 3
	minOptions   = 2
	maxOptions   = 4
)

// Question is one question as found in the generator output.
type Question struct {
	Text    string
	Options []string
}

// Questions runs Block and ParseQuestions over raw generator output.
func Questions(raw string) []Question {
	block, ok := Block(raw)
	if !ok {
		return nil
	}
	return ParseQuestions(block)
}

// ParseQuestions reads {"questions":[{"text":..,"options":[..]}, ..]} from
// candidate. Objects without a text field or with fewer than 2 or more than 4
// options are skipped, and at most 3 questions are returned. When the array
// is never closed, every complete object before the cut is still used.
func ParseQuestions(candidate string) []Question {
	pos, ok := FindKey(candidate, questionsKey)
	if !ok {
		return nil
	}
	open := strings.IndexByte(candidate[pos:], '[')
	if open < 0 {
		return nil
	}
	open += pos

	span := candidate[open:]
	if end, ok := BalancedSpan(candidate, open); ok {
		span = candidate[open : end+1]
	}

	var out []Question
	for _, obj := range SplitTopLevel(span, '{') {
		text, ok := StringField(obj, textKey)
		if !ok {
			continue
		}
		options, ok := StringArrayField(obj, optionsKey)
		if !ok || len(options) < minOptions || len(options) > maxOptions {
			continue
		}
		out = append(out, Question{Text: text, Options: options})
		if len(out) == maxQuestions {
			break
		}
	}
	return out
}
