// ABOUTME: Natural ordering for lesson slugs so "2-loops" sorts before "10-recursion".
// ABOUTME: Slugs with a numeric prefix come first, ordered by that number, then lexicographically.
package lesson

import "strings"

// compareSlugs orders slugs by leading number when both have one, then by
// the remaining text. Numbered slugs sort before unnumbered ones.
func compareSlugs(a, b string) int {
	na, ra := splitNumber(a)
	nb, rb := splitNumber(b)

	switch {
	case na != "" && nb != "":
		if c := compareDigits(na, nb); c != 0 {
			return c
		}
		if c := strings.Compare(ra, rb); c != 0 {
			return c
		}
	case na != "":
		return -1
	case nb != "":
		return 1
	}
	return strings.Compare(a, b)
}

// splitNumber returns the leading run of ASCII digits and the rest.
func splitNumber(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two digit strings numerically without parsing,
// so arbitrarily long prefixes cannot overflow.
func compareDigits(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func trimZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}
