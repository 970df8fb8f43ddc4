package routemap

// CurveOptions parameterizes GenerateCurve.
type CurveOptions struct {
	// Length is the number of samples; the curve has Length-1 points.
	Length int
	Type   CurveType
	// Flip swaps which axis carries the weave and which the straight offset.
	Flip bool
	// Slope blends easing and racing weights; 0 is sharpest, 1 is uniform.
	Slope float64
}

// GenerateCurve returns the intermediate points of a route from a to b. The
// result holds exactly Length-1 points; each point is accumulated from the
// previous one, so the last point lands near b but not necessarily on it.
// The function is pure and recomputes everything on each call.
func GenerateCurve(a, b Vec2, opts CurveOptions) []Vec2 {
	n := opts.Length
	if n < 2 {
		return nil
	}
	length := float64(n)
	slope := opts.Slope

	ix := (b.X - a.X) / length
	iy := (b.Y - a.Y) / length
	if opts.Flip {
		ix, iy = iy, ix
	}

	half := length/2 - 1
	last := length - 1

	points := make([]Vec2, 0, n-1)
	prev := a
	for step := 0; step < n-1; step++ {
		i := float64(step)
		jx, jy := ix, iy

		switch opts.Type {
		case CurveSnake:
			if half <= 0 {
				break
			}
			easing := min(i, last-i)
			racing := half - easing
			ease := (easing*slope + racing) / (1 + slope)
			race := (racing*slope + easing) / (1 + slope)
			jx = ix * 2 * race / half
			jy = iy * 2 * ease / half
		case CurveSingle:
			easing := last - i
			racing := i
			ease := (easing*slope + racing) / (1 + slope)
			race := (racing*slope + easing) / (1 + slope)
			jx = ix * 2 * ease / last
			jy = iy * 2 * race / last
		case CurveLinear:
			jx = ix * (last - i) * 2 / last
			jy = iy * i * 2 / last
		}

		if opts.Flip {
			jx, jy = jy, jx
		}
		prev = Vec2{prev.X + jx, prev.Y + jy}
		points = append(points, prev)
	}
	return points
}
