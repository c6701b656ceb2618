// Package geom holds the axis-aligned box primitives the panel feature
// hands to the host: a Box is an origin plus extents in the panel frame
// (X = length, Y = width, Z = thickness, millimetres).
package geom
