package vote

import (
	"strconv"
	"strings"
)

// Callback tokens are embedded in answer buttons as
// "sv|<survey id>|q|<question index>|o|<option index>".
const (
	TokenPrefix    = "sv"
	tokenSeparator = "|"
	questionTag    = "q"
	optionTag      = "o"
	tokenFields    = 6
)

// Token is a decoded answer button payload.
type Token struct {
	SurveyID string
	Question int
	Option   int
}

// FormatToken encodes an answer choice for a button.
func FormatToken(surveyID string, question, option int) string {
	return strings.Join([]string{
		TokenPrefix, surveyID,
		questionTag, strconv.Itoa(question),
		optionTag, strconv.Itoa(option),
	}, tokenSeparator)
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return FormatToken(t.SurveyID, t.Question, t.Option)
}

// ParseToken decodes a token. Anything that is not exactly six fields with
// the literal tags, a non-empty survey id and two unsigned decimal indexes is
// rejected.
func ParseToken(raw string) (Token, bool) {
	f := strings.Split(raw, tokenSeparator)
	if len(f) != tokenFields {
		return Token{}, false
	}
	if f[0] != TokenPrefix || f[2] != questionTag || f[4] != optionTag || f[1] == "" {
		return Token{}, false
	}
	q, ok := parseIndex(f[3])
	if !ok {
		return Token{}, false
	}
	o, ok := parseIndex(f[5])
	if !ok {
		return Token{}, false
	}
	return Token{SurveyID: f[1], Question: q, Option: o}, true
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
