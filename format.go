package routemap

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Record grammar. Numbers are runs of digits and dots with an optional sign;
// strings run up to the next field separator.
const (
	num = `(-?[0-9.]+)`
	str = `([^,;\n]+)`
)

var (
	cameraRecord = regexp.MustCompile(`^camera:x=` + num + `,y=` + num + `,scale=` + num + `$`)
	entityRecord = regexp.MustCompile(`^(?:id=` + num + `,)?source=` + str + `,x=` + num + `,y=` + num +
		`(?:,z=` + num + `)?,scale=` + num + `(?:,rotation=` + num + `)?$`)
	routeRecord = regexp.MustCompile(`^id=` + num + `,start=` + num + `,end=` + num + `,length=` + num +
		`,type=` + str + `,flip=(true|false),slope=` + num + `$`)
)

const (
	entitiesHeader = "entities:"
	routesHeader   = "routes:"
)

// ParseError reports a document record that does not match the grammar.
type ParseError struct {
	Record int    // zero-based record index
	Text   string // the offending record
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("routemap: record %d %q: %s", e.Record, e.Text, e.Msg)
}

// CameraState is the persisted part of the camera.
type CameraState struct {
	X, Y, Scale float64
}

// EntityRecord is one persisted entity. ID is NoEntity when the record
// carried no id.
type EntityRecord struct {
	ID       EntityID
	Source   string
	X, Y     float64
	Z        int
	Scale    float64
	Rotation float64
}

// RouteRecord is one persisted route.
type RouteRecord struct {
	ID         RouteID
	Start, End EntityID
	Length     int
	Type       CurveType
	Flip       bool
	Slope      float64
}

// Document is the parsed form of a saved map.
type Document struct {
	Camera   CameraState
	Entities []EntityRecord
	Routes   []RouteRecord
}

// Parse reads a document. Records are separated by ';' or newlines; blank
// records are skipped. The first record must be the camera, followed by the
// entities section and, optionally, the routes section. Explicit ids must be
// unique within their section.
func Parse(text string) (Document, error) {
	var doc Document
	records := strings.FieldsFunc(text, func(r rune) bool { return r == ';' || r == '\n' })
	entityIDs := make(map[EntityID]bool)
	routeIDs := make(map[RouteID]bool)

	section := ""
	seenCamera := false
	for i, raw := range records {
		rec := strings.TrimSpace(raw)
		if rec == "" {
			continue
		}
		fail := func(format string, args ...any) error {
			return &ParseError{Record: i, Text: rec, Msg: fmt.Sprintf(format, args...)}
		}

		if !seenCamera {
			cam, err := parseCamera(rec)
			if err != nil {
				return Document{}, fail("%v", err)
			}
			doc.Camera = cam
			seenCamera = true
			continue
		}

		switch rec {
		case entitiesHeader:
			if section != "" {
				return Document{}, fail("unexpected entities section")
			}
			section = entitiesHeader
			continue
		case routesHeader:
			switch section {
			case "":
				return Document{}, fail("routes section before entities section")
			case routesHeader:
				return Document{}, fail("duplicate routes section")
			}
			section = routesHeader
			continue
		}

		switch section {
		case entitiesHeader:
			e, err := parseEntity(rec)
			if err != nil {
				return Document{}, fail("%v", err)
			}
			if e.ID != NoEntity {
				if entityIDs[e.ID] {
					return Document{}, fail("duplicate entity id %d", e.ID)
				}
				entityIDs[e.ID] = true
			}
			doc.Entities = append(doc.Entities, e)
		case routesHeader:
			r, err := parseRoute(rec)
			if err != nil {
				return Document{}, fail("%v", err)
			}
			if routeIDs[r.ID] {
				return Document{}, fail("duplicate route id %d", r.ID)
			}
			routeIDs[r.ID] = true
			doc.Routes = append(doc.Routes, r)
		default:
			return Document{}, fail("record outside of a section")
		}
	}
	if !seenCamera {
		return Document{}, &ParseError{Record: 0, Msg: "missing camera record"}
	}
	if section == "" {
		return Document{}, &ParseError{Record: len(records), Msg: "missing entities section"}
	}
	return doc, nil
}

func parseCamera(rec string) (CameraState, error) {
	m := cameraRecord.FindStringSubmatch(rec)
	if m == nil {
		return CameraState{}, fmt.Errorf("malformed camera record")
	}
	var cam CameraState
	var err error
	if cam.X, err = parseFloat("x", m[1]); err != nil {
		return CameraState{}, err
	}
	if cam.Y, err = parseFloat("y", m[2]); err != nil {
		return CameraState{}, err
	}
	if cam.Scale, err = parseFloat("scale", m[3]); err != nil {
		return CameraState{}, err
	}
	return cam, nil
}

func parseEntity(rec string) (EntityRecord, error) {
	m := entityRecord.FindStringSubmatch(rec)
	if m == nil {
		return EntityRecord{}, fmt.Errorf("malformed entity record")
	}
	e := EntityRecord{ID: NoEntity, Source: m[2]}
	var err error
	if m[1] != "" {
		id, err := parseInt("id", m[1])
		if err != nil {
			return EntityRecord{}, err
		}
		if id < 0 {
			return EntityRecord{}, fmt.Errorf("negative id %d", id)
		}
		e.ID = EntityID(id)
	}
	if e.X, err = parseFloat("x", m[3]); err != nil {
		return EntityRecord{}, err
	}
	if e.Y, err = parseFloat("y", m[4]); err != nil {
		return EntityRecord{}, err
	}
	if m[5] != "" {
		if e.Z, err = parseInt("z", m[5]); err != nil {
			return EntityRecord{}, err
		}
	}
	if e.Scale, err = parseFloat("scale", m[6]); err != nil {
		return EntityRecord{}, err
	}
	if m[7] != "" {
		if e.Rotation, err = parseFloat("rotation", m[7]); err != nil {
			return EntityRecord{}, err
		}
	}
	return e, nil
}

func parseRoute(rec string) (RouteRecord, error) {
	m := routeRecord.FindStringSubmatch(rec)
	if m == nil {
		return RouteRecord{}, fmt.Errorf("malformed route record")
	}
	var r RouteRecord
	ints := make([]int, 4)
	for i, name := range []string{"id", "start", "end", "length"} {
		v, err := parseInt(name, m[i+1])
		if err != nil {
			return RouteRecord{}, err
		}
		ints[i] = v
	}
	if ints[0] < 0 {
		return RouteRecord{}, fmt.Errorf("negative id %d", ints[0])
	}
	if ints[3] > MaxRouteLength {
		return RouteRecord{}, fmt.Errorf("length %d exceeds %d", ints[3], MaxRouteLength)
	}
	r.ID, r.Start, r.End, r.Length = RouteID(ints[0]), EntityID(ints[1]), EntityID(ints[2]), ints[3]

	t, ok := ParseCurveType(m[5])
	if !ok {
		return RouteRecord{}, fmt.Errorf("unknown route type %q", m[5])
	}
	r.Type = t
	r.Flip = m[6] == "true"

	var err error
	if r.Slope, err = parseFloat("slope", m[7]); err != nil {
		return RouteRecord{}, err
	}
	return r, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := parseFloat(field, s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("field %s: %q is not an integer", field, s)
	}
	return int(v), nil
}

// formatFloat writes v in the shortest decimal form without an exponent.
// Non-finite values are written as 0.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String formats the document. Records are joined by ';'. Parse(d.String())
// yields d again for any document whose entities all carry ids.
func (d Document) String() string {
	records := make([]string, 0, 3+len(d.Entities)+len(d.Routes))
	records = append(records, "camera:x="+formatFloat(d.Camera.X)+
		",y="+formatFloat(d.Camera.Y)+
		",scale="+formatFloat(d.Camera.Scale))

	records = append(records, entitiesHeader)
	for _, e := range d.Entities {
		var b strings.Builder
		if e.ID >= 0 {
			b.WriteString("id=" + strconv.Itoa(int(e.ID)) + ",")
		}
		b.WriteString("source=" + e.Source)
		b.WriteString(",x=" + formatFloat(e.X))
		b.WriteString(",y=" + formatFloat(e.Y))
		b.WriteString(",z=" + strconv.Itoa(e.Z))
		b.WriteString(",scale=" + formatFloat(e.Scale))
		b.WriteString(",rotation=" + formatFloat(e.Rotation))
		records = append(records, b.String())
	}

	records = append(records, routesHeader)
	for _, r := range d.Routes {
		records = append(records, fmt.Sprintf("id=%d,start=%d,end=%d,length=%d,type=%s,flip=%t,slope=%s",
			r.ID, r.Start, r.End, r.Length, r.Type, r.Flip, formatFloat(r.Slope)))
	}
	return strings.Join(records, ";")
}

// Snapshot captures the persisted state of the session. Entities and routes
// are listed in registration order.
func (ed *Editor) Snapshot() Document {
	doc := Document{Camera: CameraState{X: ed.Camera.X, Y: ed.Camera.Y, Scale: ed.Camera.Scale}}
	for e := range ed.Entities.All() {
		doc.Entities = append(doc.Entities, EntityRecord{
			ID:       e.ID,
			Source:   e.Source,
			X:        e.X,
			Y:        e.Y,
			Z:        e.Z,
			Scale:    e.Scale,
			Rotation: e.Rotation,
		})
	}
	for r := range ed.Routes.All() {
		doc.Routes = append(doc.Routes, RouteRecord{
			ID:     r.ID,
			Start:  r.Start,
			End:    r.End,
			Length: r.Length,
			Type:   r.Type,
			Flip:   r.Flip,
			Slope:  r.Slope,
		})
	}
	return doc
}

// Save returns the session formatted as a document.
func (ed *Editor) Save() string {
	return ed.Snapshot().String()
}

// Load replaces the session with the given document. Entities, routes,
// selection and flights are cleared first; when the document fails to parse
// the error is logged and returned and the session stays empty.
func (ed *Editor) Load(text string) error {
	ed.Reset()
	doc, err := Parse(text)
	if err != nil {
		ed.logger.Warn("load map", "error", err)
		return fmt.Errorf("load map: %w", err)
	}
	ed.Apply(doc)
	ed.logger.Info("map loaded", "entities", len(doc.Entities), "routes", len(doc.Routes))
	return nil
}

// Apply adds the contents of a parsed document to the session and sets the
// camera. Existing entities and routes with the same ids are replaced.
// Explicit ids are reserved before entities without an id are numbered, so
// the two never collide.
func (ed *Editor) Apply(doc Document) {
	ed.Camera.X = doc.Camera.X
	ed.Camera.Y = doc.Camera.Y
	ed.Camera.Scale = doc.Camera.Scale
	ed.Camera.scrollTween = nil
	ed.Camera.clamp()

	for _, rec := range doc.Entities {
		ed.Entities.ids.Reserve(int(rec.ID))
	}
	for _, rec := range doc.Entities {
		e := NewEntity(rec.Source)
		e.X, e.Y = rec.X, rec.Y
		e.Z = rec.Z
		e.Scale = rec.Scale
		e.Rotation = rec.Rotation
		ed.Entities.Load(e, rec.ID)
	}
	for _, rec := range doc.Routes {
		r := &Route{
			Start:  rec.Start,
			End:    rec.End,
			Length: rec.Length,
			Type:   rec.Type,
			Flip:   rec.Flip,
			Slope:  rec.Slope,
		}
		ed.Routes.Load(r, rec.ID)
	}
	ed.Entities.reconcileIDs()
	ed.Routes.reconcileIDs()
}
