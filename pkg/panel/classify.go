package panel

import (
	"errors"
	"fmt"

	"github.com/chazu/lignin-panel/pkg/geom"
)

// FaceRole is the identity of one of the six panel faces.
type FaceRole int

const (
	Top FaceRole = iota
	Bottom
	RoleL1
	RoleL2
	RoleW1
	RoleW2
)

// FaceRoles lists every role in a stable order.
var FaceRoles = [...]FaceRole{Top, Bottom, RoleL1, RoleL2, RoleW1, RoleW2}

func (r FaceRole) String() string {
	switch r {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case RoleL1:
		return "l1"
	case RoleL2:
		return "l2"
	case RoleW1:
		return "w1"
	case RoleW2:
		return "w2"
	default:
		return fmt.Sprintf("FaceRole(%d)", int(r))
	}
}

// SideRole returns the face role of side s.
func SideRole(s Side) FaceRole {
	return RoleL1 + FaceRole(s)
}

// Side returns the banding side of a side role.
func (r FaceRole) Side() (Side, bool) {
	if r < RoleL1 || r > RoleW2 {
		return 0, false
	}
	return Side(r - RoleL1), true
}

// ErrNoFaces is returned when Classify is given an empty shape.
var ErrNoFaces = errors.New("panel: cannot classify faces of an empty shape")

// Classification maps each role to the face chosen for it.
type Classification map[FaceRole]geom.Face

// Classify assigns a role to the faces of a monolithic box solid by the
// extremes of their centers: Top/Bottom by Z, W1/W2 by X, L2/L1 by Y.
// Each role is an independent scan; ties keep the first face seen.
func Classify(faces []geom.Face) (Classification, error) {
	if len(faces) == 0 {
		return nil, ErrNoFaces
	}

	pick := func(key func(geom.Face) float64, max bool) geom.Face {
		best := faces[0]
		for _, f := range faces[1:] {
			if (max && key(f) > key(best)) || (!max && key(f) < key(best)) {
				best = f
			}
		}
		return best
	}
	x := func(f geom.Face) float64 { return f.Center.X }
	y := func(f geom.Face) float64 { return f.Center.Y }
	z := func(f geom.Face) float64 { return f.Center.Z }

	return Classification{
		Top:    pick(z, true),
		Bottom: pick(z, false),
		RoleW1: pick(x, false),
		RoleW2: pick(x, true),
		RoleL2: pick(y, false),
		RoleL1: pick(y, true),
	}, nil
}
