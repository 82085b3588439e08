package geom

import (
	"math"
	"testing"
)

func TestVectorOps(t *testing.T) {
	v := Vector3{X: 3, Y: 4}

	if got := v.Length(); got != 5 {
		t.Errorf("Length() = %g, want 5", got)
	}

	n := v.Normalized()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Normalized().Length() = %g, want 1", n.Length())
	}

	if got := (Vector3{}).Normalized(); got != (Vector3{}) {
		t.Errorf("zero vector normalized to %+v", got)
	}

	sum := v.Add(Vector3{X: 1, Y: 1, Z: 2})
	if sum != (Vector3{X: 4, Y: 5, Z: 2}) {
		t.Errorf("Add = %+v", sum)
	}

	if got := v.DistanceTo(Vector3{X: 3, Y: 0}); got != 4 {
		t.Errorf("DistanceTo = %g, want 4", got)
	}
}

func TestYawTowards(t *testing.T) {
	cases := []struct {
		name string
		from Vector3
		to   Vector3
		want float64
	}{
		{"east", Vector3{}, Vector3{X: 10}, 0},
		{"north", Vector3{}, Vector3{Y: 10}, 90},
		{"west", Vector3{}, Vector3{X: -10}, 180},
		{"south", Vector3{}, Vector3{Y: -10}, -90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.YawTowards(tc.to); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("YawTowards = %g, want %g", got, tc.want)
			}
		})
	}
}
