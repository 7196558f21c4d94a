package roster

import (
	"fmt"
	"strings"
)

// Slot is one of the eight fixed roster positions.
type Slot int

const (
	PG Slot = iota
	SG
	SF
	PF
	C
	G
	F
	UTIL
)

// NumSlots is the number of positions every roster fills.
const NumSlots = 8

// Slots lists the positions in evaluation order. This is also the branching
// order used by the search: the single-position slots come first since they
// have the fewest eligible candidates, then the two-position slots, then UTIL.
var Slots = [NumSlots]Slot{PG, SG, SF, PF, C, G, F, UTIL}

var slotNames = [NumSlots]string{"PG", "SG", "SF", "PF", "C", "G", "F", "UTIL"}

func (s Slot) String() string {
	if s < 0 || int(s) >= NumSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// MarshalText writes the slot label, so slots serialize as "PG" rather than 0.
func (s Slot) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= NumSlots {
		return nil, fmt.Errorf("invalid slot %d", int(s))
	}
	return []byte(slotNames[s]), nil
}

// ParseSlot parses a single slot label, case insensitive.
func ParseSlot(label string) (Slot, error) {
	l := strings.ToUpper(strings.TrimSpace(label))
	for i, name := range slotNames {
		if name == l {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot label %q", label)
}

// SlotSet is a set of slots stored as a bitmask.
type SlotSet uint8

// NewSlotSet builds a set holding exactly the given slots.
func NewSlotSet(slots ...Slot) SlotSet {
	var ss SlotSet
	for _, s := range slots {
		ss = ss.Add(s)
	}
	return ss
}

func (ss SlotSet) Has(s Slot) bool   { return ss&(1<<uint(s)) != 0 }
func (ss SlotSet) Add(s Slot) SlotSet { return ss | (1 << uint(s)) }
func (ss SlotSet) Empty() bool        { return ss == 0 }

func (ss SlotSet) Len() int {
	n := 0
	for _, s := range Slots {
		if ss.Has(s) {
			n++
		}
	}
	return n
}

// List returns the members in evaluation order.
func (ss SlotSet) List() []Slot {
	out := make([]Slot, 0, NumSlots)
	for _, s := range Slots {
		if ss.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

func (ss SlotSet) String() string {
	names := make([]string, 0, NumSlots)
	for _, s := range ss.List() {
		names = append(names, s.String())
	}
	return strings.Join(names, "/")
}

// MarshalText writes the exact members, e.g. "PG/G/UTIL".
func (ss SlotSet) MarshalText() ([]byte, error) {
	return []byte(ss.String()), nil
}

// UnmarshalText reads the exact members written by MarshalText. Unlike
// ParseSlots it does not expand positions through the eligibility rules.
func (ss *SlotSet) UnmarshalText(text []byte) error {
	var out SlotSet
	for _, f := range strings.Split(string(text), "/") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		s, err := ParseSlot(f)
		if err != nil {
			return err
		}
		out = out.Add(s)
	}
	*ss = out
	return nil
}

// Accepts reports whether a player at natural position pos may fill slot s.
//
//	PG, SG, SF, PF, C: the same position only
//	G:    PG or SG
//	F:    SF or PF
//	UTIL: anything
func (s Slot) Accepts(pos Slot) bool {
	switch s {
	case G:
		return pos == PG || pos == SG || pos == G
	case F:
		return pos == SF || pos == PF || pos == F
	case UTIL:
		return true
	default:
		return s == pos
	}
}

// ExpandPosition returns every slot a player listed at pos may fill.
func ExpandPosition(pos Slot) SlotSet {
	var ss SlotSet
	for _, s := range Slots {
		if s.Accepts(pos) {
			ss = ss.Add(s)
		}
	}
	return ss
}

// ParseSlots parses a position list such as "PG/SG" or "SF,PF" and expands
// each position through the eligibility rules, so "PG/SG" yields
// PG/SG/G/UTIL.
func ParseSlots(positions string) (SlotSet, error) {
	var ss SlotSet
	fields := strings.FieldsFunc(positions, func(r rune) bool {
		return r == '/' || r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return 0, fmt.Errorf("no positions in %q", positions)
	}
	for _, f := range fields {
		pos, err := ParseSlot(f)
		if err != nil {
			return 0, err
		}
		ss |= ExpandPosition(pos)
	}
	return ss, nil
}
