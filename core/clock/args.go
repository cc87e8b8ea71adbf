package clock

import (
	"strconv"
	"strings"

	"example.com/clockservice/base/clockerr"
)

// choices renders a table the way usage messages list alternatives:
// "a or b", "a, b, or c".
func choices(table []string) string {
	switch len(table) {
	case 0:
		return ""
	case 1:
		return table[0]
	case 2:
		return table[0] + " or " + table[1]
	}
	return strings.Join(table[:len(table)-1], ", ") + ", or " + table[len(table)-1]
}

// lookup returns the index of the entry in table that token names, either
// exactly or as an unambiguous prefix. Matching is case-sensitive.
func lookup(token string, table []string, what string) (int, error) {
	idx, n := -1, 0
	if token != "" {
		for i, s := range table {
			if s == token {
				return i, nil
			}
			if strings.HasPrefix(s, token) {
				idx = i
				n++
			}
		}
	}
	switch {
	case n == 1:
		return idx, nil
	case n > 1:
		return -1, clockerr.Usage("ambiguous %s %q: must be %s", what, token, choices(table))
	default:
		return -1, clockerr.Usage("bad %s %q: must be %s", what, token, choices(table))
	}
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, clockerr.Usage("expected integer but got %q", s)
	}
	return v, nil
}

// Clock values are limited to instants that have a four-digit year in
// every zone, 0000-01-02T00:00:00Z through 9999-12-30T23:59:59Z, so that
// formatted dates scan back.
const (
	MinClockValue = -62167132800
	MaxClockValue = 253402214399
)

func parseClockValue(s string) (int64, error) {
	v, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if v < MinClockValue || v > MaxClockValue {
		return 0, clockerr.Usage("clock value %q out of range", s)
	}
	return v, nil
}

var boolWords = []struct {
	word  string
	value bool
}{
	{"true", true},
	{"false", false},
	{"yes", true},
	{"no", false},
	{"on", true},
	{"off", false},
}

// parseBool accepts numbers (non-zero is true) and case-insensitive unique
// prefixes of true, false, yes, no, on and off.
func parseBool(s string) (bool, error) {
	t := strings.TrimSpace(s)
	if v, err := strconv.ParseInt(t, 0, 64); err == nil {
		return v != 0, nil
	}
	if t != "" && strings.IndexByte("+-.0123456789", t[0]) >= 0 {
		if v, err := strconv.ParseFloat(t, 64); err == nil {
			return v != 0, nil
		}
	}
	t = strings.ToLower(t)
	if t != "" {
		var value bool
		n := 0
		for _, w := range boolWords {
			if strings.HasPrefix(w.word, t) {
				value = w.value
				n++
			}
		}
		if n == 1 {
			return value, nil
		}
	}
	return false, clockerr.Usage("expected boolean value but got %q", s)
}
