// Package axis models the logical axes of the A3200 controller: the XYZ
// linear stages and the AB galvo scanner. An Axis value is a set; the set
// algebra is deliberately additive only (union), since axes are labels, not
// a subtractive bit domain.
package axis

import (
	"fmt"
	"math/bits"
	"strings"
)

type Axis uint8

const (
	X Axis = 1 << iota
	Y
	Z
	A
	B

	None Axis = 0
)

// Stage and Scanner are the two physically distinct axis groups.
const (
	Stage   = X | Y | Z
	Scanner = A | B
)

// enumeration order is fixed; it defines the canonical textual form.
var order = []struct {
	ax    Axis
	label string
}{
	{X, "X"}, {Y, "Y"}, {Z, "Z"}, {A, "A"}, {B, "B"},
}

// AxisError is returned for invalid axis input or forbidden axis algebra.
type AxisError struct {
	msg string
}

func (e *AxisError) Error() string { return e.msg }

func errorf(format string, args ...interface{}) error {
	return &AxisError{msg: fmt.Sprintf(format, args...)}
}

// Parse converts an axis string like "x", "XY" or "Y Z" into an Axis set.
// Parsing is case-insensitive; unknown letters and the empty string are
// rejected.
func Parse(s string) (Axis, error) {
	var res Axis
	for _, r := range strings.ToUpper(s) {
		if r == ' ' {
			continue
		}
		var found bool
		for _, o := range order {
			if string(r) == o.label {
				res |= o.ax
				found = true
				break
			}
		}
		if !found {
			return None, errorf("unknown axis %q in %q", string(r), s)
		}
	}
	if res == None {
		return None, errorf("empty axis string")
	}
	return res, nil
}

// MustParse is Parse for known-good literals; it panics on error.
func MustParse(s string) Axis {
	ax, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ax
}

// String returns the canonical space-joined form in X,Y,Z,A,B order,
// e.g. "X Y" for X|Y. The empty set yields "".
func (a Axis) String() string {
	var parts []string
	for _, o := range order {
		if a&o.ax != 0 {
			parts = append(parts, o.label)
		}
	}
	return strings.Join(parts, " ")
}

// Count returns the number of axes in the set.
func (a Axis) Count() int { return bits.OnesCount8(uint8(a)) }

// IsSingle reports whether exactly one axis is set.
func (a Axis) IsSingle() bool { return a.Count() == 1 }

// Contains reports whether b is a subset of a.
func (a Axis) Contains(b Axis) bool { return b != None && a&b == b }

// Axes splits the set into its single axes in canonical order.
func (a Axis) Axes() []Axis {
	res := make([]Axis, 0, a.Count())
	for _, o := range order {
		if a&o.ax != 0 {
			res = append(res, o.ax)
		}
	}
	return res
}

// Group identifies one of the two axis groups.
type Group int

const (
	GroupStage Group = iota + 1
	GroupScanner
)

func (g Group) String() string {
	switch g {
	case GroupStage:
		return "stage"
	case GroupScanner:
		return "scanner"
	}
	return "unknown"
}

// GroupOf returns the group an axis set belongs to. Mixed or empty sets
// have no group.
func (a Axis) GroupOf() (Group, error) {
	switch {
	case a == None:
		return 0, errorf("empty axis set has no group")
	case Stage.Contains(a):
		return GroupStage, nil
	case Scanner.Contains(a):
		return GroupScanner, nil
	}
	return 0, errorf("axis set %q spans stage and scanner groups", a)
}

// SameGroup reports whether all axes of a and b belong to one group.
func SameGroup(a, b Axis) bool {
	_, err := (a | b).GroupOf()
	return err == nil
}

// Union combines two axis sets. Combining stage axes with scanner axes is
// a domain error: everywhere Union is meaningful (moves, arcs) the protocol
// requires same-group axes. Commands that legitimately address both groups
// (ENABLE, HOME) take separate axis arguments instead.
func (a Axis) Union(b Axis) (Axis, error) {
	u := a | b
	if _, err := u.GroupOf(); err != nil {
		return None, errorf("cannot union %q with %q: %v", a, b, err)
	}
	return u, nil
}
