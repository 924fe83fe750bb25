package version

import (
	"cmp"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-pms/internal/lex"
)

// suffixRank is the static precedence table for suffix comparison.
// The virtual "no suffix" slot (absentRank) sits between rc and p, giving
// alpha < beta < pre < rc < (none) < p.
var suffixRank = [...]int{
	Alpha: 0,
	Beta:  1,
	Pre:   2,
	RC:    3,
	P:     5,
}

const absentRank = 4

// Compare compares two versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// Order:
//  1. Numeric components left to right. The first component compares as an
//     integer of arbitrary size. Later components compare as integers unless
//     either begins with '0', in which case both compare as strings with
//     trailing zeros removed. Missing components count as "0".
//  2. Letter: no letter sorts before any letter.
//  3. Suffixes pairwise by precedence, then by number (missing = 0); the
//     shorter list is padded with the virtual "no suffix" slot.
//  4. Revision numerically (missing = 0).
func Compare(a, b Version) int {
	if c := compareNumbers(a.numbers, b.numbers); c != 0 {
		return c
	}
	if c := cmp.Compare(a.letter, b.letter); c != 0 {
		return c
	}
	if c := compareSuffixes(a.suffixes, b.suffixes); c != 0 {
		return c
	}
	return compareOptionalDigits(a.revision, b.revision)
}

// Compare compares v with other; see the package-level Compare.
func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

// Less returns true if v < other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

func compareNumbers(a, b []string) int {
	if c := lex.CompareDigits(componentAt(a, 0), componentAt(b, 0)); c != 0 {
		return c
	}
	for i := 1; i < max(len(a), len(b)); i++ {
		x, y := componentAt(a, i), componentAt(b, i)
		if x[0] == '0' || y[0] == '0' {
			if c := strings.Compare(strings.TrimRight(x, "0"), strings.TrimRight(y, "0")); c != 0 {
				return c
			}
			continue
		}
		if c := lex.CompareDigits(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func componentAt(nums []string, i int) string {
	if i < len(nums) {
		return nums[i]
	}
	return "0"
}

func compareSuffixes(a, b []Suffix) int {
	for i := range max(len(a), len(b)) {
		ra, na := suffixAt(a, i)
		rb, nb := suffixAt(b, i)
		if ra != rb {
			return cmp.Compare(ra, rb)
		}
		if c := compareOptionalDigits(na, nb); c != 0 {
			return c
		}
	}
	return 0
}

func suffixAt(s []Suffix, i int) (int, string) {
	if i < len(s) {
		return suffixRank[s[i].Kind], s[i].Number
	}
	return absentRank, ""
}

// compareOptionalDigits compares digit strings where "" stands for 0.
func compareOptionalDigits(a, b string) int {
	if a == "" {
		a = "0"
	}
	if b == "" {
		b = "0"
	}
	return lex.CompareDigits(a, b)
}

// CompareStrings parses and compares two version strings.
func CompareStrings(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return Compare(va, vb), nil
}

// Sort sorts a slice of versions in ascending order. Versions that compare
// equal keep their relative order.
func Sort(versions []Version) {
	slices.SortStableFunc(versions, Compare)
}

// Max returns the higher of two versions, preferring a when they compare equal.
func Max(a, b Version) Version {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}
