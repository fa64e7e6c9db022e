// Package vmath holds the small vector helpers shared by the cube widget and
// its renderers.
package vmath

import "math"

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Radians converts degrees.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// RotateX turns v about the X axis by deg degrees (y toward z, screen y down).
func (v Vec3) RotateX(deg float64) Vec3 {
	c, s := math.Cos(Radians(deg)), math.Sin(Radians(deg))
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

// RotateY turns v about the Y axis by deg degrees.
func (v Vec3) RotateY(deg float64) Vec3 {
	c, s := math.Cos(Radians(deg)), math.Sin(Radians(deg))
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

type Vec2 struct {
	X, Y float64
}
