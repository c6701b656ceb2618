// Package panel derives the solid decomposition of an edge-banded panel
// and classifies the faces of a monolithic panel solid.
//
// Frame: X runs along the length, Y along the width, Z through the
// thickness. The L sides run along X (L2 at y=0, L1 at y=Width), the W
// sides run along Y (W1 at x=0, W2 at x=Length). The front skin sits on
// top (max Z), the back skin at z=0.
package panel
