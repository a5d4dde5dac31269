package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultShiftWindow is used when a shift window cannot be parsed.
const DefaultShiftWindow = "9-17"

// reShiftHours extracts the first two hour figures from a shift description.
// Minutes are tolerated and discarded, so "9-17", "09:00-17:30" and
// "from 9 to 17" all normalize the same way.
var reShiftHours = regexp.MustCompile(`(\d{1,2})(?::\d{2})?\D+(\d{1,2})(?::\d{2})?`)

// NormalizeShiftWindow reduces a shift-window description to the canonical
// "start-end" whole-hour form. Accepted inputs: numeric ranges ("9-17"),
// clock ranges ("09:00-17:00"), and free text containing two hour figures.
// Anything unparsable falls back to DefaultShiftWindow.
func NormalizeShiftWindow(raw string) string {
	m := reShiftHours.FindStringSubmatch(raw)
	if m == nil {
		return DefaultShiftWindow
	}
	start, err1 := strconv.Atoi(m[1])
	end, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || start > 24 || end > 24 {
		return DefaultShiftWindow
	}
	return fmt.Sprintf("%d-%d", start, end)
}
