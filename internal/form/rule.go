package form

import "regexp"

// Rule reports whether a trimmed, non-empty value has the expected shape.
type Rule func(value string) bool

// permissiveURL accepts an optional scheme (3-9 letters followed by ":" and
// optionally "//") or a "www."/user@ prefix, a host token, and a loose
// path/query/fragment tail. It is not a URI grammar and must stay this loose:
// values accepted here have always been accepted.
var permissiveURL = regexp.MustCompile(
	`^((([A-Za-z]{3,9}:(?://)?)(?:[-;:&=+$,\w]+@)?[A-Za-z0-9.-]+|(?:www\.|[-;:&=+$,\w]+@)[A-Za-z0-9.-]+)` +
		`((?:/[-+~%/.\w]*)?\??(?:[-+=&;%@,.\w]*)#?(?:[,.!/\\\w]*))?)$`,
)

// URL is the format rule for URL-shaped fields.
func URL(value string) bool {
	return permissiveURL.MatchString(value)
}
