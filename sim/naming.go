package sim

import (
	"regexp"
	"strings"
)

var nameElemPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*(\[[0-9]+\])*$`)

// NameMustBeValid panics if the name does not follow the naming convention.
// A name is a dot-separated hierarchy such as "Bench.PEPC" or "Bench.Core[2]".
// Each element is non-empty, starts with a capital letter, contains only
// letters and digits, and may carry square-bracket indices.
func NameMustBeValid(name string) {
	for _, elem := range strings.Split(name, ".") {
		if elem == "" {
			panic("Name " + name + " is not valid: " +
				"name element must not be empty")
		}

		if !nameElemPattern.MatchString(elem) {
			panic("Name " + name + " is not valid: " +
				"element " + elem + " must be capitalized CamelCase")
		}
	}
}
