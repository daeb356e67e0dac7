package service

import (
	"regexp"
	"strconv"
)

var ratingPattern = regexp.MustCompile(`(\d+)/10`)

// ExtractScore returns the first integer written immediately before "/10" in
// feedback, or nil when there is none. The value is not range checked.
func ExtractScore(feedback string) *int {
	m := ratingPattern.FindStringSubmatch(feedback)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
