package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// hitEpsilon rejects intersections behind or grazing the camera and
// near-parallel rays.
const hitEpsilon = 1e-9

// plane is one tracked plane with a precomputed local basis for polygon
// containment tests.
type plane struct {
	origin  r3.Vec
	normal  r3.Vec
	u, v    r3.Vec
	polygon [][2]float64
}

// Raycast implements xr.RaycastManager for the simulated world: exact
// ray casts against the scenario's plane polygons, nearest hit first.
type Raycast struct {
	camera     *Camera
	intrinsics IntrinsicsConfig
	planes     []plane
}

func newRaycast(camera *Camera, scenario Scenario) *Raycast {
	r := &Raycast{
		camera:     camera,
		intrinsics: scenario.Camera.Intrinsics,
	}
	for _, pc := range scenario.Planes {
		n := r3.Unit(r3.Vec{X: pc.Normal[0], Y: pc.Normal[1], Z: pc.Normal[2]})
		u, v := planeBasis(n)
		r.planes = append(r.planes, plane{
			origin:  r3.Vec{X: pc.Origin[0], Y: pc.Origin[1], Z: pc.Origin[2]},
			normal:  n,
			u:       u,
			v:       v,
			polygon: pc.Polygon,
		})
	}
	return r
}

// RaycastWithinPlane implements xr.RaycastManager. The screen point is
// unprojected through the camera intrinsics into a world-space ray and
// intersected with every plane polygon; hits are ordered nearest first.
func (r *Raycast) RaycastWithinPlane(pt xr.ScreenPoint) []xr.Hit {
	camPose := r.camera.Transform()

	// Camera-space ray through the pixel, +Z forward.
	dir := r3.Unit(r3.Vec{
		X: (pt.X - r.intrinsics.PrincipalX) / r.intrinsics.FocalX,
		Y: (pt.Y - r.intrinsics.PrincipalY) / r.intrinsics.FocalY,
		Z: 1,
	})
	dir = r3.Rotation(camPose.Orientation).Rotate(dir)
	origin := camPose.Position

	var hits []xr.Hit
	for _, p := range r.planes {
		denom := r3.Dot(p.normal, dir)
		if math.Abs(denom) < hitEpsilon {
			continue
		}
		t := r3.Dot(p.normal, r3.Sub(p.origin, origin)) / denom
		if t < hitEpsilon {
			continue
		}
		point := r3.Add(origin, r3.Scale(t, dir))
		local := r3.Sub(point, p.origin)
		if !polygonContains(p.polygon, r3.Dot(local, p.u), r3.Dot(local, p.v)) {
			continue
		}
		hits = append(hits, xr.Hit{
			Pose: xr.Pose{
				Position:    point,
				Orientation: rotationBetween(r3.Vec{Y: 1}, p.normal),
			},
			Distance: t,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// planeBasis builds an orthonormal (u, v) basis spanning the plane with
// the given unit normal.
func planeBasis(n r3.Vec) (u, v r3.Vec) {
	up := r3.Vec{Y: 1}
	if math.Abs(r3.Dot(n, up)) > 0.99 {
		up = r3.Vec{X: 1}
	}
	u = r3.Unit(r3.Cross(up, n))
	v = r3.Cross(n, u)
	return u, v
}

// polygonContains tests (x, y) against the polygon with the even-odd
// rule.
func polygonContains(polygon [][2]float64, x, y float64) bool {
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		xi, yi := polygon[i][0], polygon[i][1]
		xj, yj := polygon[j][0], polygon[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// rotationBetween returns the unit quaternion rotating unit vector a onto
// unit vector b.
func rotationBetween(a, b r3.Vec) quat.Number {
	d := r3.Dot(a, b)
	if d > 1-1e-12 {
		return quat.Number{Real: 1}
	}
	if d < -1+1e-12 {
		// Opposite vectors: rotate half a turn around any orthogonal axis.
		axis, _ := planeBasis(a)
		return quat.Number{Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
	}
	axis := r3.Cross(a, b)
	q := quat.Number{Real: 1 + d, Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
	return quat.Scale(1/quat.Abs(q), q)
}
