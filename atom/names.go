package atom

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-pms/internal/lex"
	"github.com/albertocavalcante/go-pms/version"
)

// nameRule describes one PMS identifier class: ASCII letters and digits plus
// the punctuation in extra, where badFirst may not start the name.
type nameRule struct {
	what     string
	extra    string
	badFirst string
}

// Reference: PMS 3.1 (Restrictions upon Names)
var (
	categoryRule = nameRule{what: "category", extra: "+_.-", badFirst: "-.+"}
	packageRule  = nameRule{what: "package name", extra: "+_-", badFirst: "-+"}
	slotRule     = nameRule{what: "slot name", extra: "+_.-", badFirst: "-.+"}
	subslotRule  = nameRule{what: "subslot name", extra: "+_.-", badFirst: "-.+"}
	repoRule     = nameRule{what: "repository name", extra: "_-", badFirst: "-"}
	useFlagRule  = nameRule{what: "USE flag", extra: "+_@-", badFirst: "+_@-"}
)

// check returns the offset of the first invalid byte and a reason, or -1.
func (r nameRule) check(s string) (int, string) {
	if s == "" {
		return 0, "empty " + r.what
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if lex.IsAlnum(c) {
			continue
		}
		if strings.IndexByte(r.extra, c) < 0 {
			return i, fmt.Sprintf("invalid character %q in %s", c, r.what)
		}
		if i == 0 && strings.IndexByte(r.badFirst, c) >= 0 {
			return 0, fmt.Sprintf("%s must not start with %q", r.what, c)
		}
	}
	return -1, ""
}

// versionTail returns the offset of the leftmost '-' in s that is followed by
// a complete valid version, or -1.
func versionTail(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '-' && lex.IsDigit(s[i+1]) && version.Valid(s[i+1:]) {
			return i
		}
	}
	return -1
}
