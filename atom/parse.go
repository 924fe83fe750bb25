package atom

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-pms/diag"
)

// ParseDep parses a full dependency atom in a single left-to-right pass:
// blocker, operator, category/package[-version[*]], ":slot", "[use,...]"
// groups and "::repo". The first failing segment aborts the parse.
//
// Without an operator no version is split off: "dev-lang/rust-1" is
// rejected as a package name ending in a version, never read as a Cpv.
func ParseDep(s string) (Dep, error) {
	var d Dep
	pos := 0

	// "!!" must be tried before "!".
	switch {
	case strings.HasPrefix(s, "!!"):
		d.blocker = Strong
		pos = 2
	case strings.HasPrefix(s, "!"):
		d.blocker = Weak
		pos = 1
	}

	opStart := pos
	for _, t := range operatorTokens {
		if strings.HasPrefix(s[pos:], t.tok) {
			d.op = t.op
			pos += len(t.tok)
			break
		}
	}
	if d.op != NoOperator && pos < len(s) && strings.IndexByte("<>=~!", s[pos]) >= 0 {
		return Dep{}, diag.New(diag.MalformedOperator, s, s[opStart:pos+1], pos,
			fmt.Sprintf("unexpected %q after operator %q", s[pos], d.op))
	}

	end := segmentEnd(s, pos)
	seg := s[pos:end]

	if strings.HasSuffix(seg, "*") {
		if d.op != Equal {
			return Dep{}, diag.New(diag.MalformedOperator, s, seg, end-1, "'*' is only valid with the '=' operator")
		}
		d.op = Glob
		seg = seg[:len(seg)-1]
	}

	if d.op == NoOperator {
		cpn, err := parseCpn(s, seg, pos)
		if err != nil {
			return Dep{}, err
		}
		d.cpn = cpn
	} else {
		cpn, v, found, err := parseVersioned(s, seg, pos)
		if err != nil {
			return Dep{}, err
		}
		if !found {
			return Dep{}, diag.New(diag.MalformedOperator, s, s[opStart:pos], opStart,
				fmt.Sprintf("operator %q requires a version", d.op))
		}
		if d.op == Approximate && v.HasRevision() {
			return Dep{}, diag.New(diag.MalformedOperator, s, s[opStart:pos], opStart, "'~' cannot be used with a revision")
		}
		d.cpn = cpn
		d.version = v
	}
	pos = end

	if pos < len(s) && s[pos] == ':' && !strings.HasPrefix(s[pos:], "::") {
		start := pos + 1
		stop := segmentEnd(s, start)
		slot, err := parseSlot(s, s[start:stop], start)
		if err != nil {
			return Dep{}, err
		}
		d.slot = slot
		d.hasSlot = true
		pos = stop
	}

	for pos < len(s) && s[pos] == '[' {
		closing := strings.IndexByte(s[pos:], ']')
		if closing < 0 {
			return Dep{}, diag.New(diag.MalformedUseDep, s, s[pos:], len(s), "unterminated '['")
		}
		closing += pos
		group, err := parseUseGroup(s, s[pos+1:closing], pos+1)
		if err != nil {
			return Dep{}, err
		}
		d.useGroups = append(d.useGroups, group)
		pos = closing + 1
	}

	if strings.HasPrefix(s[pos:], "::") {
		start := pos + 2
		stop := segmentEnd(s, start)
		repo, err := parseRepo(s, s[start:stop], start)
		if err != nil {
			return Dep{}, err
		}
		d.repo = repo
		pos = stop
	}

	if pos < len(s) {
		return Dep{}, diag.New(diag.TrailingInput, s, s[pos:], pos, "unexpected input after atom")
	}
	return d, nil
}

// segmentEnd returns the index of the next ':' or '[' at or after pos,
// or len(s).
func segmentEnd(s string, pos int) int {
	if i := strings.IndexAny(s[pos:], ":["); i >= 0 {
		return pos + i
	}
	return len(s)
}

func parseUseGroup(input, seg string, base int) ([]UseDep, error) {
	if seg == "" {
		return nil, diag.New(diag.MalformedUseDep, input, seg, base, "empty USE dependency list")
	}
	var group []UseDep
	off := 0
	for item := range strings.SplitSeq(seg, ",") {
		u, err := parseUseDep(input, item, base+off)
		if err != nil {
			return nil, err
		}
		group = append(group, u)
		off += len(item) + 1
	}
	return group, nil
}

func parseRepo(input, seg string, base int) (string, error) {
	if off, reason := repoRule.check(seg); off >= 0 {
		return "", diag.New(diag.MalformedRepo, input, seg, base+off, reason)
	}
	if off := versionTail(seg); off >= 0 {
		return "", diag.New(diag.MalformedRepo, input, seg, base+off, "repository name must not end in a hyphen followed by a version")
	}
	return seg, nil
}
