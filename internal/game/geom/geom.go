// Package geom provides the small 3D math vocabulary shared by the engine
// and the asset layer.
package geom

import "math"

// Vector3 is a position, direction, or scale in world units.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotator is an orientation in degrees.
type Rotator struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// UnitScale is the identity scale.
var UnitScale = Vector3{X: 1, Y: 1, Z: 1}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v * factor.
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Length returns the magnitude of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns v scaled to unit length. The zero vector normalizes to
// itself.
func (v Vector3) Normalized() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Scale(1 / length)
}

// DistanceTo returns the distance between v and other.
func (v Vector3) DistanceTo(other Vector3) float64 {
	return v.Sub(other).Length()
}

// YawTowards returns the yaw in degrees that points from v to target on the
// XY plane.
func (v Vector3) YawTowards(target Vector3) float64 {
	return math.Atan2(target.Y-v.Y, target.X-v.X) * 180 / math.Pi
}
