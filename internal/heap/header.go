// Package heap provides the garbage-collected cell header and managed
// reference protocol shared by every object-model payload in the
// Orizon runtime: a fixed-size header carrying a type discriminator
// and GC mark color, a one-word managed reference with type-safe
// downcast, and the tracing protocol the collector drives during a
// mark-sweep cycle.
package heap

import "sync/atomic"

// Color is the tri-color mark state of a cell.
type Color uint8

const (
	// White marks a cell unreached by the current trace; it is
	// reclaimed if it stays White through a full sweep.
	White Color = iota
	// Gray marks a cell discovered by the tracer whose children have
	// not yet been scanned.
	Gray
	// Black marks a cell whose children have all been scanned.
	Black
	// Dead marks a cell the sweeper has reclaimed.
	Dead
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Gray:
		return "Gray"
	case Black:
		return "Black"
	case Dead:
		return "Dead"
	default:
		return "Color(?)"
	}
}

// colorMask carves the low two bits of the discriminator word for the
// color tag, relying on word alignment to guarantee those bits are
// otherwise unused by a real TypeID. This is the 64-bit packed layout;
// an unpacked layout (color in a separate byte) would suit 32-bit
// targets better, which this module does not target.
const colorMask = uintptr(0x3)

// TypeID identifies a payload's concrete Go type for the downcast
// contract. Zero is reserved: a Header whose discriminator is zero
// (once the color bits are masked off) is zapped/dead.
type TypeID uintptr

// Header is the fixed prefix preceding every managed payload. A
// Header is nonzero (discriminator word, color bits masked off) iff
// its cell is live; zeroing it is "zapping".
//
// Header is always the first field of the generic box that wraps a
// payload (see ref.go), so a *Header and the box's address are one
// and the same pointer value. That gives header-to-payload addressing
// by construction: the payload begins immediately after the header in
// memory, and recovering a pointer to the box from a *Header is a
// plain pointer conversion, not arithmetic on a computed offset.
type Header struct {
	discriminator uintptr
}

// TypeID returns the discriminator with the color bits masked off.
func (h *Header) TypeID() TypeID {
	return TypeID(atomic.LoadUintptr(&h.discriminator) &^ colorMask)
}

// Color returns the cell's current mark color.
func (h *Header) Color() Color {
	return Color(atomic.LoadUintptr(&h.discriminator) & colorMask)
}

// SetColor updates the mark color in place, leaving the type
// discriminator untouched.
func (h *Header) SetColor(c Color) {
	for {
		old := atomic.LoadUintptr(&h.discriminator)
		next := (old &^ colorMask) | uintptr(c&Color(colorMask))
		if atomic.CompareAndSwapUintptr(&h.discriminator, old, next) {
			return
		}
	}
}

// IsLive reports whether the cell has not been zapped.
func (h *Header) IsLive() bool {
	return h.TypeID() != 0
}

// Zap marks the cell as freed by clearing its type discriminator.
// After Zap, tracing this cell is undefined and the sweeper must not
// enqueue it; callers must not dereference the payload again.
func (h *Header) Zap() {
	atomic.StoreUintptr(&h.discriminator, 0)
}

// initDiscriminator is used exactly once, at allocation time, to set
// the type discriminator of a freshly-zeroed header to a nonzero
// TypeID with White color. It must not be called on a live header.
func (h *Header) initDiscriminator(id TypeID) {
	atomic.StoreUintptr(&h.discriminator, uintptr(id)|uintptr(White))
}
