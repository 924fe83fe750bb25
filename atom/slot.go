package atom

import (
	"strings"

	"github.com/albertocavalcante/go-pms/diag"
)

// SlotOperator is the rebuild operator of a slot dependency.
type SlotOperator uint8

const (
	NoSlotOperator SlotOperator = iota
	// SlotEqual is "=": any slot/subslot, recorded at build time.
	SlotEqual
	// SlotStar is "*": any slot, not recorded.
	SlotStar
)

func (o SlotOperator) String() string {
	switch o {
	case SlotEqual:
		return "="
	case SlotStar:
		return "*"
	default:
		return ""
	}
}

// SlotDep is the clause after ':' in an atom. Valid forms:
//
//	slot  slot/sub  slot=  slot/sub=  =  *
type SlotDep struct {
	slot    string
	subslot string
	op      SlotOperator
}

// ParseSlotDep parses a slot dependency without its leading ':'.
func ParseSlotDep(s string) (SlotDep, error) {
	return parseSlot(s, s, 0)
}

// NewSlotDep creates a validated SlotDep.
func NewSlotDep(slot, subslot string, op SlotOperator) (SlotDep, error) {
	want := SlotDep{slot: slot, subslot: subslot, op: op}
	got, err := ParseSlotDep(want.String())
	if err != nil {
		return SlotDep{}, err
	}
	if got != want {
		return SlotDep{}, diag.New(diag.MalformedSlot, want.String(), want.String(), 0, "slot name must not contain '/'")
	}
	return got, nil
}

func parseSlot(input, seg string, base int) (SlotDep, error) {
	fail := func(off int, reason string) (SlotDep, error) {
		return SlotDep{}, diag.New(diag.MalformedSlot, input, seg, base+off, reason)
	}

	switch seg {
	case "":
		return fail(0, "empty slot")
	case "*":
		return SlotDep{op: SlotStar}, nil
	case "=":
		return SlotDep{op: SlotEqual}, nil
	}

	body := seg
	var op SlotOperator
	switch seg[len(seg)-1] {
	case '=':
		op = SlotEqual
		body = seg[:len(seg)-1]
	case '*':
		return fail(len(seg)-1, "'*' must stand alone")
	}

	slot, subslot, hasSub := strings.Cut(body, "/")
	if off, reason := slotRule.check(slot); off >= 0 {
		return fail(off, reason)
	}
	if hasSub {
		if off, reason := subslotRule.check(subslot); off >= 0 {
			return fail(len(slot)+1+off, reason)
		}
	}
	return SlotDep{slot: slot, subslot: subslot, op: op}, nil
}

// Slot returns the slot name, or "" for the bare "=" and "*" forms.
func (s SlotDep) Slot() string {
	return s.slot
}

// Subslot returns the subslot name, or "".
func (s SlotDep) Subslot() string {
	return s.subslot
}

// Operator returns the rebuild operator.
func (s SlotDep) Operator() SlotOperator {
	return s.op
}

// String returns the clause without the leading ':'.
func (s SlotDep) String() string {
	out := s.slot
	if s.subslot != "" {
		out += "/" + s.subslot
	}
	return out + s.op.String()
}
