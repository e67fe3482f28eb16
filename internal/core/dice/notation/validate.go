package notation

import "regexp"

// A term is a count of at most 100, optionally followed by d and a die size
// of at most 1000. Expressions chain up to ten terms.
const (
	countPattern = `(?:\d{1,2}|100)`
	sizePattern  = `(?:\d{1,3}|1000)`
	termPattern  = countPattern + `(?:d` + sizePattern + `)?`
)

var (
	expressionRegexp = regexp.MustCompile(`^` + termPattern + `(?:[-+*/d]` + termPattern + `){0,9}$`)
	singleDieRegexp  = regexp.MustCompile(`^` + countPattern + `d` + sizePattern + `$`)
)

// IsValid reports whether expression is a well-formed dice notation
// expression within the admission bounds: at most 100 dice per term, at most
// 1000 sides per die and at most 10 chained terms. It does not evaluate.
func IsValid(expression string) bool {
	return expressionRegexp.MatchString(expression)
}

// IsSingleDie reports whether expression is a bare NdM term.
func IsSingleDie(expression string) bool {
	return singleDieRegexp.MatchString(expression)
}
