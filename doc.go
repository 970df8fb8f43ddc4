// Package routemap is the spatial interaction engine of a 2D map editor.
//
// Sprites ("entities") are placed on a pannable, zoomable map, layered by
// z-order, selected by click or marquee, moved, rotated and scaled, and
// connected by procedurally generated flight routes that a plane entity can
// animate along.
//
// All state lives on an [Editor] session. The editor never draws or reads
// devices itself: input arrives as normalized [Event] values through
// [Editor.HandleEvent], images are resolved through an [ImageSource], and
// [Editor.Render] draws onto a [Canvas]. The ebitenmap package provides all
// three on [Ebitengine].
//
//	ed := routemap.NewEditor(routemap.DefaultConfig())
//	ed.SetImageSource(assets)
//	ed.Resize(1280, 720)
//	if err := ed.Load(saved); err != nil {
//		// the session is empty; the error is already logged
//	}
//
//	// every frame
//	ed.Update(1.0 / 60)
//	ed.Render(canvas)
//
// # Geometry
//
// An entity's screen rectangle is a [Space], resolved on demand from its
// world transform, the native image size and the [Camera] by [ResolveSpace].
// Hit tests rotate the query point into the entity's frame with
// [RotateAbout] and test the axis-aligned box, so rotated sprites hit exactly.
//
// # Routes and flights
//
// [GenerateCurve] produces the points of a route from its anchors and
// [CurveOptions]. [Editor.Fly] starts a plane along a route; progress
// accelerates out of the start, decelerates into the end and the plane faces
// along the curve. Routes whose anchors are deleted are retired.
//
// # Documents
//
// [Editor.Save] and [Editor.Load] use a compact text format of ';' separated
// records:
//
//	camera:x=0,y=0,scale=1;entities:;id=0,source=Base.png,x=100,y=0,z=0,scale=1,rotation=0;routes:
//
// # Events
//
// An [EventStore] set with [Editor.SetEventStore] receives selection changes,
// deletions, retired routes and flight transitions. The ecs package
// publishes them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package routemap
