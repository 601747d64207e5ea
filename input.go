package driftwood

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputSource supplies the raw input signals a Scroller samples once per
// tick. Device is the production implementation backed by ebiten;
// ScriptInput replays scripted frames for tests and demos.
//
// Poll latches one tick's worth of deltas and is called exactly once per
// Scroller.Update; the getters are stable between consecutive Polls.
type InputSource interface {
	// Ready reports whether the source can deliver input. Returning an
	// error makes NewScroller fall back to the native engine.
	Ready() error

	// Poll advances the source by one tick, latching this tick's deltas.
	Poll()

	// Wheel returns the wheel offsets latched by the last Poll, in ebiten's
	// convention: positive Y when the wheel rolls away from the user.
	Wheel() (dx, dy float64)

	// TouchScroll returns the primary touch's vertical movement since the
	// previous tick, positive downward. Zero when no touch is held.
	TouchScroll() float64

	// Pointer returns the pointer position in viewport coordinates. ok is
	// false when no pointer is present (cursor outside the viewport and no
	// touch held). Safe to read without a preceding Poll.
	Pointer() (x, y float64, ok bool)

	// Focused reports whether the host window has input focus.
	Focused() bool
}

// Device reads wheel, touch, cursor, and focus state from ebiten. One Device
// can serve a Scroller and a Field at once: the Scroller polls it, the Field
// only reads Pointer.
type Device struct {
	wheelX, wheelY float64
	touchIDs       []ebiten.TouchID
	touchID        ebiten.TouchID
	touching       bool
	lastTouchY     float64
	touchDelta     float64
	viewportW      float64
	viewportH      float64
}

// NewDevice returns a Device with no viewport bounds; until SetViewport is
// called the cursor always reads as present.
func NewDevice() *Device {
	return &Device{}
}

// SetViewport sets the logical viewport size used to judge whether the
// cursor is inside the window. Hosts typically call this from their Layout
// alongside Scroller.Resize.
func (d *Device) SetViewport(w, h float64) {
	d.viewportW = w
	d.viewportH = h
}

// Ready always reports nil: if the process is running an ebiten game loop,
// input is available.
func (d *Device) Ready() error {
	return nil
}

// Poll latches this tick's wheel offsets and computes the primary touch's
// pan delta. A freshly placed finger sets the reference without producing a
// delta, so a tap never reads as a scroll jump.
func (d *Device) Poll() {
	d.wheelX, d.wheelY = ebiten.Wheel()

	d.touchDelta = 0
	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])
	if len(d.touchIDs) == 0 {
		d.touching = false
		return
	}
	primary := d.touchIDs[0]
	_, ty := ebiten.TouchPosition(primary)
	y := float64(ty)
	if d.touching && primary == d.touchID {
		d.touchDelta = y - d.lastTouchY
	}
	d.touchID = primary
	d.touching = true
	d.lastTouchY = y
}

// Wheel returns the wheel offsets latched by the last Poll.
func (d *Device) Wheel() (dx, dy float64) {
	return d.wheelX, d.wheelY
}

// TouchScroll returns the primary touch's vertical movement latched by the
// last Poll, positive downward.
func (d *Device) TouchScroll() float64 {
	return d.touchDelta
}

// Pointer returns the touch position while a finger is held, otherwise the
// cursor position. With a viewport set, a cursor outside it reads as absent.
func (d *Device) Pointer() (x, y float64, ok bool) {
	if d.touching && len(d.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(d.touchIDs[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	x, y = float64(mx), float64(my)
	if d.viewportW > 0 && d.viewportH > 0 {
		if x < 0 || y < 0 || x > d.viewportW || y > d.viewportH {
			return x, y, false
		}
	}
	return x, y, true
}

// Focused reports whether the host window has input focus.
func (d *Device) Focused() bool {
	return ebiten.IsFocused()
}
