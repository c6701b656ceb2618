package geom

import "gonum.org/v1/gonum/spatial/r3"

func sub(a, b r3.Vec) r3.Vec   { return r3.Sub(a, b) }
func cross(a, b r3.Vec) r3.Vec { return r3.Cross(a, b) }
