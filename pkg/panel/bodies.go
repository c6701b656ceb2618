package panel

import (
	"fmt"

	"github.com/chazu/lignin-panel/pkg/geom"
)

// BodyRole names one solid of the decomposed panel.
type BodyRole int

const (
	BodyBase BodyRole = iota
	BodyFront
	BodyBack
	BodyStripL1
	BodyStripL2
	BodyStripW1
	BodyStripW2
)

// BodyRoles lists every body in the order the host receives them.
var BodyRoles = [...]BodyRole{
	BodyBase, BodyFront, BodyBack,
	BodyStripL1, BodyStripL2, BodyStripW1, BodyStripW2,
}

// String returns the stable host-side name of the body.
func (r BodyRole) String() string {
	switch r {
	case BodyBase:
		return "Base"
	case BodyFront:
		return "Front"
	case BodyBack:
		return "Back"
	case BodyStripL1:
		return "ABS_L1"
	case BodyStripL2:
		return "ABS_L2"
	case BodyStripW1:
		return "ABS_W1"
	case BodyStripW2:
		return "ABS_W2"
	default:
		return fmt.Sprintf("BodyRole(%d)", int(r))
	}
}

// StripRole returns the body role of the banding strip on side s.
func StripRole(s Side) BodyRole {
	return BodyStripL1 + BodyRole(s)
}

// Side returns the side a strip body belongs to.
func (r BodyRole) Side() (Side, bool) {
	if r < BodyStripL1 || r > BodyStripW2 {
		return 0, false
	}
	return Side(r - BodyStripL1), true
}

// FaceRole returns the face role whose appearance a body carries. The base
// has no single role: its visible faces are covered by the other bodies.
func (r BodyRole) FaceRole() (FaceRole, bool) {
	switch r {
	case BodyFront:
		return Top, true
	case BodyBack:
		return Bottom, true
	}
	if s, ok := r.Side(); ok {
		return SideRole(s), true
	}
	return 0, false
}

// Bodies is the result of Derive. A nil box is an absent or collapsed
// body; the host receives the empty shape for it.
type Bodies struct {
	Base   *geom.Box
	Front  *geom.Box
	Back   *geom.Box
	Strips [4]*geom.Box // indexed by Side
}

// Get returns the box for role.
func (b Bodies) Get(role BodyRole) *geom.Box {
	switch role {
	case BodyBase:
		return b.Base
	case BodyFront:
		return b.Front
	case BodyBack:
		return b.Back
	}
	if s, ok := role.Side(); ok {
		return b.Strips[s]
	}
	return nil
}

// Empty reports whether no body has geometry.
func (b Bodies) Empty() bool {
	for _, r := range BodyRoles {
		if b.Get(r) != nil {
			return false
		}
	}
	return true
}

// Present returns the roles that carry geometry, in BodyRoles order.
func (b Bodies) Present() []BodyRole {
	var roles []BodyRole
	for _, r := range BodyRoles {
		if b.Get(r) != nil {
			roles = append(roles, r)
		}
	}
	return roles
}

// Volume returns the summed volume of every body.
func (b Bodies) Volume() float64 {
	var v float64
	for _, r := range BodyRoles {
		v += b.Get(r).Volume()
	}
	return v
}
