package physics

// Segment and overlap queries against the contact registry. These sweep
// the registered collider AABBs directly instead of going through the
// space, which keeps sensors (portals, hazards) and solid geometry
// queryable with one code path.

// RayHit is the nearest collider struck by a Raycast.
type RayHit struct {
	Contact *Contact
	X, Y    float64
}

// Raycast walks the segment (x0,y0)->(x1,y1) and returns the nearest
// accepted collider. The filter decides which contacts participate; pass
// nil to accept everything with bounds.
func (w *World) Raycast(x0, y0, x1, y1 float64, accept func(*Contact) bool) (RayHit, bool) {
	if w == nil {
		return RayHit{}, false
	}
	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 && dy == 0 {
		return RayHit{}, false
	}

	closestT := 1.0
	var closest *Contact
	for _, contact := range w.contacts {
		if accept != nil && !accept(contact) {
			continue
		}
		minX, minY, maxX, maxY, ok := contact.bounds()
		if !ok {
			continue
		}
		if hit, t := segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY); hit {
			if t >= 0 && t < closestT {
				closestT = t
				closest = contact
			}
		}
	}
	if closest == nil {
		return RayHit{}, false
	}
	return RayHit{Contact: closest, X: x0 + dx*closestT, Y: y0 + dy*closestT}, true
}

// OverlapBox returns every accepted collider whose AABB intersects the
// given rect.
func (w *World) OverlapBox(minX, minY, maxX, maxY float64, accept func(*Contact) bool) []*Contact {
	if w == nil {
		return nil
	}
	var hits []*Contact
	for _, contact := range w.contacts {
		if accept != nil && !accept(contact) {
			continue
		}
		cMinX, cMinY, cMaxX, cMaxY, ok := contact.bounds()
		if !ok {
			continue
		}
		if minX < cMaxX && maxX > cMinX && minY < cMaxY && maxY > cMinY {
			hits = append(hits, contact)
		}
	}
	return hits
}

// segmentAABBHit is a slab test returning the entry parameter t in [0,1].
func segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY float64) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if dx == 0 {
		if x0 < minX || x0 > maxX {
			return false, 0
		}
	} else {
		inv := 1.0 / dx
		t1 := (minX - x0) * inv
		t2 := (maxX - x0) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false, 0
		}
	}

	if dy == 0 {
		if y0 < minY || y0 > maxY {
			return false, 0
		}
	} else {
		inv := 1.0 / dy
		t1 := (minY - y0) * inv
		t2 := (maxY - y0) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false, 0
		}
	}

	return true, tmin
}
