// Package viewer holds the zoom and pan state of the fullscreen scan viewer.
//
// Coordinates are in terminal cells. The controller knows nothing about
// rendering; it turns pointer, wheel and touch input into a Transform.
package viewer

import "math"

// Point is a position or offset in cells.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a viewport size in cells.
type Size struct {
	Width, Height float64
}

// Limits bound the zoom factor.
type Limits struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultLimits are the zoom bounds of the viewer buttons.
var DefaultLimits = Limits{Min: 0.5, Max: 3.0, Step: 0.25}

// Aspect corrects the displayed image footprint relative to the viewport.
type Aspect struct {
	Width, Height float64
}

// DefaultAspect matches the bundled scans.
var DefaultAspect = Aspect{Width: 1.0002, Height: 1.0356}

// Transform is the zoom factor and pan offset applied to the scan.
type Transform struct {
	Zoom   float64
	Offset Point
}

// Identity is the unzoomed, centred transform.
func Identity() Transform {
	return Transform{Zoom: 1}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLimits overrides the zoom bounds. Invalid limits are ignored.
func WithLimits(l Limits) Option {
	return func(c *Controller) {
		if l.Min > 0 && l.Max >= l.Min && l.Step > 0 {
			c.limits = l
		}
	}
}

// WithAspect sets the per-scan aspect correction.
func WithAspect(a Aspect) Option {
	return func(c *Controller) {
		if a.Width > 0 && a.Height > 0 {
			c.aspect = a
		}
	}
}

// WithViewport sets the initial viewport.
func WithViewport(s Size) Option {
	return func(c *Controller) {
		c.viewport = s
	}
}

// Controller is the interactive zoom/pan state for one viewer activation.
// It is not safe for concurrent use; the UI loop owns it.
type Controller struct {
	limits   Limits
	aspect   Aspect
	viewport Size

	zoom   float64
	offset Point

	dragging   bool
	dragStart  Point
	dragOrigin Point

	pinching    bool
	pinchDist   float64
	pinchZoom   float64
	pinchMid    Point
	pinchOrigin Point
}

// New returns a controller at the identity transform.
func New(opts ...Option) *Controller {
	c := &Controller{
		limits: DefaultLimits,
		aspect: DefaultAspect,
		zoom:   1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Transform returns the current zoom and offset.
func (c *Controller) Transform() Transform {
	return Transform{Zoom: c.zoom, Offset: c.offset}
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 {
	return c.zoom
}

// Limits returns the zoom bounds in effect.
func (c *Controller) Limits() Limits {
	return c.limits
}

// CanZoomIn reports whether ZoomIn would change the zoom.
func (c *Controller) CanZoomIn() bool {
	return c.zoom < c.limits.Max
}

// CanZoomOut reports whether ZoomOut would change the zoom.
func (c *Controller) CanZoomOut() bool {
	return c.zoom > c.limits.Min
}

// Reset returns to the identity transform and drops any gesture.
func (c *Controller) Reset() {
	c.zoom = 1
	c.offset = Point{}
	c.dragging = false
	c.pinching = false
}

// ZoomIn adds one step, up to the maximum.
func (c *Controller) ZoomIn() {
	c.setZoom(c.zoom + c.limits.Step)
}

// ZoomOut subtracts one step, down to the minimum.
func (c *Controller) ZoomOut() {
	c.setZoom(c.zoom - c.limits.Step)
}

// Wheel zooms one discrete step: up (negative dy) zooms in, down zooms out.
func (c *Controller) Wheel(dy float64) {
	switch {
	case dy < 0:
		c.ZoomIn()
	case dy > 0:
		c.ZoomOut()
	}
}

// SetViewport records a new viewport size and re-clamps the offset.
func (c *Controller) SetViewport(s Size) {
	c.viewport = s
	c.offset = c.clamp(c.offset, c.zoom)
}

// Pan shifts the offset by d while zoomed in. At zoom 1 or below the
// image is centred and Pan does nothing.
func (c *Controller) Pan(d Point) {
	if c.zoom <= 1 {
		return
	}
	c.offset = c.clamp(c.offset.add(d), c.zoom)
}

// Dragging reports whether a drag gesture is active.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Pinching reports whether a pinch gesture is active.
func (c *Controller) Pinching() bool {
	return c.pinching
}

// BeginDrag arms a drag anchored at p. Dragging needs magnification and no
// pinch in progress; it reports whether the drag was armed.
func (c *Controller) BeginDrag(p Point) bool {
	if c.zoom <= 1 || c.pinching {
		return false
	}
	c.dragging = true
	c.dragStart = p
	c.dragOrigin = c.offset
	return true
}

// UpdateDrag pans by the pointer's travel since BeginDrag.
func (c *Controller) UpdateDrag(p Point) {
	if !c.dragging || c.pinching || c.zoom <= 1 {
		return
	}
	c.offset = c.clamp(c.dragOrigin.add(p.sub(c.dragStart)), c.zoom)
}

// EndDrag clears the drag gesture.
func (c *Controller) EndDrag() {
	c.dragging = false
}

// BeginPinch anchors a two-finger gesture. Any drag is cancelled.
func (c *Controller) BeginPinch(a, b Point) {
	c.dragging = false
	c.pinching = true
	c.anchorPinch(a, b)
}

// UpdatePinch scales the anchored zoom by the change in finger distance and
// pans by the travel of the finger midpoint. While the anchor distance is
// zero the frame only re-anchors.
func (c *Controller) UpdatePinch(a, b Point) {
	if !c.pinching {
		return
	}
	if c.pinchDist == 0 {
		if distance(a, b) > 0 {
			c.anchorPinch(a, b)
		}
		return
	}
	z := c.limitZoom(c.pinchZoom * distance(a, b) / c.pinchDist)
	c.zoom = z
	c.offset = c.clamp(c.pinchOrigin.add(midpoint(a, b).sub(c.pinchMid)), z)
}

// EndPinch ends the pinch. When exactly one finger remains on a magnified
// image the gesture continues as a drag from that finger.
func (c *Controller) EndPinch(remaining []Point) {
	if !c.pinching {
		return
	}
	c.pinching = false
	if len(remaining) == 1 {
		c.BeginDrag(remaining[0])
	}
}

// PointerDown starts a mouse drag with the primary button.
func (c *Controller) PointerDown(p Point) {
	c.BeginDrag(p)
}

// PointerMove continues a mouse drag.
func (c *Controller) PointerMove(p Point) {
	c.UpdateDrag(p)
}

// PointerUp releases a mouse drag.
func (c *Controller) PointerUp() {
	c.EndDrag()
}

// TouchStart handles the active touch list after a finger lands.
func (c *Controller) TouchStart(touches []Point) {
	switch len(touches) {
	case 1:
		c.pinching = false
		c.BeginDrag(touches[0])
	case 2:
		c.BeginPinch(touches[0], touches[1])
	}
}

// TouchMove handles movement of the active touches.
func (c *Controller) TouchMove(touches []Point) {
	switch {
	case c.pinching && len(touches) == 2:
		c.UpdatePinch(touches[0], touches[1])
	case c.dragging && len(touches) == 1:
		c.UpdateDrag(touches[0])
	}
}

// TouchEnd handles a lift or cancel with the touches that remain.
func (c *Controller) TouchEnd(remaining []Point) {
	switch {
	case len(remaining) == 0:
		c.dragging = false
		c.pinching = false
	case len(remaining) == 1 && c.pinching:
		c.EndPinch(remaining)
	}
}

func (c *Controller) anchorPinch(a, b Point) {
	c.pinchDist = distance(a, b)
	c.pinchZoom = c.zoom
	c.pinchMid = midpoint(a, b)
	c.pinchOrigin = c.offset
}

// setZoom snaps z to a 1e-9 grid so fractional steps land back on 1.
func (c *Controller) setZoom(z float64) {
	c.zoom = c.limitZoom(math.Round(z*1e9) / 1e9)
	c.offset = c.clamp(c.offset, c.zoom)
}

func (c *Controller) limitZoom(z float64) float64 {
	return math.Max(c.limits.Min, math.Min(c.limits.Max, z))
}

// clamp keeps the zoomed image edge reachable without letting it leave the
// viewport. Before the viewport is known the offset is left as is.
func (c *Controller) clamp(p Point, zoom float64) Point {
	if zoom <= 1 {
		return Point{}
	}
	if c.viewport.Width <= 0 || c.viewport.Height <= 0 {
		return p
	}
	w := c.viewport.Width * c.aspect.Width
	h := c.viewport.Height * c.aspect.Height
	maxX := (w*zoom - w) / 2
	maxY := (h*zoom - h) / 2
	return Point{
		X: math.Max(-maxX, math.Min(maxX, p.X)),
		Y: math.Max(-maxY, math.Min(maxY, p.Y)),
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}
