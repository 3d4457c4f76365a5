package geometry

// EllipseContains reports whether p lies inside the ellipse inscribed in r,
// using the normalized ellipse inequality with rx=Width/2 and ry=Height/2.
func EllipseContains(r Rect, p Point2D) bool {
	// Fast bounding-box rejection before the ellipse test.
	if !r.Contains(p) {
		return false
	}
	rx := r.Width / 2
	ry := r.Height / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := r.Center()
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}
