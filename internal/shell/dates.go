package shell

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/br"
	"github.com/olebedev/when/rules/en"

	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// DateLayout is the dd/mm/yyyy layout stored in order records.
const DateLayout = "02/01/2006"

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(br.All...)
	w.Add(en.All...)
	return w
}

// NormalizeDate turns what the user typed into a dd/mm/yyyy date.
//
// Text containing '/' must already be a valid dd/mm/yyyy date. Anything else
// is read as a casual date relative to now ("hoje", "ontem", "today",
// "last friday").
func NormalizeDate(input string, now time.Time) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if strings.Contains(input, "/") {
		return input, validate.Date(input)
	}

	r, err := dateParser.Parse(input, now)
	if err != nil || r == nil {
		return "", false
	}
	date := r.Time.Format(DateLayout)
	return date, validate.Date(date)
}
