//go:build !packedheaders

package slotstore

// header is the default per-slot layout: an explicit state tag plus a full
// Ix-sized forwarding word. Simple and debugger-friendly, at the cost of a
// few extra header bytes versus the packed-headers layout (see
// header_packed.go).
type header struct {
	state   State
	forward Ix
}

func (h *header) stateOf() State { return h.state }

func (h *header) setFree() {
	h.state = StateFree
	h.forward = Ix{}
}

func (h *header) setLive() {
	h.state = StateLive
	h.forward = Ix{}
}

func (h *header) forwardTo(ix Ix) {
	h.state = StateForwarded
	h.forward = ix
}

func (h *header) forwardTarget() Ix { return h.forward }
