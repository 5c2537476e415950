package dialog

import (
	"strings"

	"github.com/araddon/dateparse"
)

// DateValueLayout is the format of DateTimeResolution.Value.
const DateValueLayout = "2006-01-02"

// RecognizeDateTime parses a date/time literal into candidate resolutions,
// most likely reading first. Ambiguous day/month literals yield both
// readings; unparseable input yields none.
func RecognizeDateTime(input string) []DateTimeResolution {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	first, err := dateparse.ParseAny(input)
	if err != nil {
		return nil
	}
	resolutions := []DateTimeResolution{{Value: first.Format(DateValueLayout)}}

	// A literal like 03/04/2026 reads differently day-first.
	if alt, err := dateparse.ParseAny(input, dateparse.PreferMonthFirst(false)); err == nil {
		if v := alt.Format(DateValueLayout); v != resolutions[0].Value {
			resolutions = append(resolutions, DateTimeResolution{Value: v})
		}
	}
	return resolutions
}
