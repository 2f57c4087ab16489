//go:build packedheaders

// Package slotstore, packed-headers variant: the state tag is folded into
// the top two bits of the forwarding word's Pos field instead of living in
// its own byte. This shrinks the per-slot header from 24 to 16 bytes (the
// state byte plus its alignment padding go away) at the cost
// of a narrower usable position range (2^30 slots instead of 2^32) and
// precludes some debugging instrumentation that wants to read a clean state
// byte. Gated behind the `packedheaders` build tag so callers opt into the
// trade-off rather than inherit it.
package slotstore

const (
	posMask  = 0x3FFFFFFF
	stateBit = 30
)

// header packs the state tag into the spare high bits of forward.Pos.
type header struct {
	forward Ix
}

func (h *header) stateOf() State {
	return State(h.forward.Pos >> stateBit)
}

func (h *header) setFree() {
	h.forward = Ix{Pos: uint32(StateFree) << stateBit}
}

func (h *header) setLive() {
	h.forward = Ix{Pos: uint32(StateLive) << stateBit}
}

func (h *header) forwardTo(ix Ix) {
	h.forward = Ix{
		Pos:     (ix.Pos & posMask) | (uint32(StateForwarded) << stateBit),
		Gen:     ix.Gen,
		ArenaID: ix.ArenaID,
	}
}

func (h *header) forwardTarget() Ix {
	ix := h.forward
	ix.Pos &= posMask
	return ix
}
