package routemap

import (
	"math"
)

// penaltyCap bounds the per-frame slowdown as a fraction of the flight speed.
// Progress always advances by at least (1-penaltyCap)*speed per frame.
const penaltyCap = 0.94

// flight is the animator state of one route in flight.
type flight struct {
	plane EntityID
	// delay counts down reference frames before progress starts advancing.
	delay float64
	// In-flight pose. heading is the direction of the last curve segment,
	// radians.
	pos     Vec2
	heading float64
}

// Fly starts animating plane along route. Progress restarts from zero and the
// ignition delay is armed. A route already in flight is restarted, and a
// plane already flying another route leaves it.
//
// The plane's stored transform is only written when it lands on the end
// anchor; until then the in-flight pose is reported by PlanePose, so saving
// mid-flight persists where the plane took off from.
func (ed *Editor) Fly(route RouteID, plane EntityID) error {
	r, ok := ed.Routes.Get(route)
	if !ok {
		return ErrUnknownRoute
	}
	p, ok := ed.Entities.Get(plane)
	if !ok {
		return ErrUnknownEntity
	}
	start, ok := ed.Entities.Get(r.Start)
	if !ok {
		ed.retireRoute(r)
		return ErrUnknownEntity
	}
	end, ok := ed.Entities.Get(r.End)
	if !ok {
		ed.retireRoute(r)
		return ErrUnknownEntity
	}

	for id, f := range ed.flights {
		if f.plane == plane && id != route {
			ed.endFlight(id)
		}
	}

	r.Flying = true
	r.FlightProgress = 0
	p.Flying = true
	f := &flight{
		plane:   plane,
		delay:   float64(ed.config.IgnitionDelay),
		pos:     start.Position(),
		heading: math.Atan2(end.Y-start.Y, end.X-start.X),
	}
	ed.flights[route] = f
	ed.placePlane(r, f, p, start.Position(), end.Position())

	ed.logger.Debug("flight started", "route", route, "plane", plane, "length", r.Length)
	ed.emit(EditorEvent{Type: EventFlightStarted, RouteID: route, EntityID: plane})
	return nil
}

// Flying reports whether route is currently in flight.
func (ed *Editor) Flying(route RouteID) bool {
	_, ok := ed.flights[route]
	return ok
}

// PlanePose returns the transform an entity is drawn with: the in-flight pose
// while it flies a route, its stored transform otherwise.
func (ed *Editor) PlanePose(id EntityID) (Transform, bool) {
	e, ok := ed.Entities.Get(id)
	if !ok {
		return Transform{}, false
	}
	return ed.pose(e), true
}

func (ed *Editor) pose(e *Entity) Transform {
	t := e.Transform()
	if !e.Flying {
		return t
	}
	for _, f := range ed.flights {
		if f.plane == e.ID {
			t.X, t.Y = f.pos.X, f.pos.Y
			t.Rotation = ToDegrees(f.heading)
			break
		}
	}
	return t
}

// updateFlights advances every running flight by dt seconds and retires
// routes whose anchors no longer exist.
func (ed *Editor) updateFlights(dt float64) {
	frames := dt * ed.config.FrameRate

	for r := range ed.Routes.All() {
		start, okStart := ed.Entities.Get(r.Start)
		end, okEnd := ed.Entities.Get(r.End)
		if !okStart || !okEnd {
			ed.retireRoute(r)
			continue
		}

		f, ok := ed.flights[r.ID]
		if !ok {
			continue
		}
		plane, ok := ed.Entities.Get(f.plane)
		if !ok {
			ed.logger.Debug("flight aborted", "route", r.ID, "plane", f.plane)
			ed.endFlight(r.ID)
			continue
		}

		remaining := frames
		if f.delay > 0 {
			f.delay -= remaining
			remaining = max(-f.delay, 0)
		}
		if remaining > 0 {
			ed.advance(r, remaining)
		}

		ed.placePlane(r, f, plane, start.Position(), end.Position())

		if r.FlightProgress >= float64(r.Length) {
			ed.finishFlight(r, plane)
		}
	}
}

// advance moves route progress forward by the given number of reference
// frames. Whole frames are stepped one at a time; a fractional remainder is
// applied proportionally.
func (ed *Editor) advance(r *Route, frames float64) {
	for frames >= 1 && r.FlightProgress < float64(r.Length) {
		r.FlightProgress += flightStep(r.FlightProgress, float64(r.Length), ed.config.FlightSpeed)
		frames--
	}
	if frames > 0 && r.FlightProgress < float64(r.Length) {
		r.FlightProgress += frames * flightStep(r.FlightProgress, float64(r.Length), ed.config.FlightSpeed)
	}
}

// flightStep returns the progress gained in one reference frame at position
// p on a route of length l. The plane accelerates out of the start and
// decelerates into the end; the penalty is capped so the step is always
// positive.
func flightStep(p, l, speed float64) float64 {
	easing := min(p+l/8, (l-1)-p) * speed
	penalty := speed - easing/(l/3)
	if penalty > speed*penaltyCap {
		penalty = speed * penaltyCap
	}
	return speed - penalty
}

// placePlane moves the in-flight pose to the curve point bracketing the
// current progress, facing along the segment leading to it. Past the last
// point the plane lands: it snaps onto the end anchor, keeps the last heading
// and the pose is written to the entity.
func (ed *Editor) placePlane(r *Route, f *flight, plane *Entity, start, end Vec2) {
	if !plane.Flying {
		return
	}
	curve := GenerateCurve(start, end, r.CurveOptions())

	i := int(math.Floor(r.FlightProgress)) + 1
	if i < 0 {
		i = 0
	}
	if i < len(curve) {
		prev := start
		if i > 0 {
			prev = curve[i-1]
		}
		next := curve[i]
		f.heading = math.Atan2(next.Y-prev.Y, next.X-prev.X)
		f.pos = next
		return
	}

	f.pos = end
	plane.X, plane.Y = end.X, end.Y
	plane.Rotation = ToDegrees(f.heading)
	plane.Flying = false
}

func (ed *Editor) finishFlight(r *Route, plane *Entity) {
	plane.Flying = false
	ed.endFlight(r.ID)
	ed.logger.Debug("flight finished", "route", r.ID, "plane", plane.ID)
	ed.emit(EditorEvent{Type: EventFlightFinished, RouteID: r.ID, EntityID: plane.ID})
}

// endFlight drops the animator state of a route and lands its plane.
func (ed *Editor) endFlight(id RouteID) {
	f, ok := ed.flights[id]
	if !ok {
		return
	}
	delete(ed.flights, id)
	if r, ok := ed.Routes.Get(id); ok {
		r.Flying = false
	}
	if p, ok := ed.Entities.Get(f.plane); ok {
		p.Flying = false
	}
}

// retireRoute removes a route that lost one of its anchors.
func (ed *Editor) retireRoute(r *Route) {
	ed.endFlight(r.ID)
	ed.Routes.Delete(r.ID)
	ed.logger.Debug("route retired", "route", r.ID, "start", r.Start, "end", r.End)
	ed.emit(EditorEvent{Type: EventRouteRetired, RouteID: r.ID})
}
