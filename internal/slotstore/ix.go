// Package slotstore implements the growable, moving backing store that
// underlies a single arena generation: a contiguous slice of headered slots,
// each either Live (holding a payload) or Free, plus the bookkeeping a
// Cheney-style copying collector needs to relocate survivors.
//
// Deliberately a plain Go slice underneath, not a wrapper over the runtime's
// own arena support: the whole point of this library is a heap the host
// garbage collector never has to scan, which rules out delegating to an
// allocator the host GC already knows how to walk.
//
// © 2025 movingarena authors. MIT License.
package slotstore

import "fmt"

// Ix is a copyable, comparable token naming a position inside one arena
// generation. It carries no ownership: values may be freely copied, stored,
// and compared, but dereferencing one requires going back through the Region
// that issued it.
//
// Pos is the slot index within the backing store at the time of issuance.
// Gen is the arena generation active when the index was issued; a mismatch
// against the region's current generation means the index predates the most
// recent collection and may be stale. ArenaID is the issuing Region's
// sequence number, stamped into every index a Region mints in every build;
// only the zero-value Nil sentinel carries ArenaID 0.
type Ix struct {
	Pos     uint32
	Gen     uint32
	ArenaID uint64
}

// Nil is the zero-value Ix, used as a "points nowhere" sentinel by Weak
// entries whose pointee has been collected.
var Nil = Ix{}

// IsNil reports whether ix is the zero-value sentinel.
func (ix Ix) IsNil() bool { return ix == Nil }

// Equal reports whether two indices name the same position in the same
// generation. It deliberately ignores ArenaID: comparing indices minted by
// different arenas is a caller bug the debug build can diagnose explicitly
// via SameArena, but equality itself must stay cheap and always defined.
func (ix Ix) Equal(other Ix) bool {
	return ix.Pos == other.Pos && ix.Gen == other.Gen
}

// SameArena reports whether ix was issued by the arena identified by id.
// ArenaID is stamped in every build, so the check works in release builds
// too; only the debug-validity build applies it automatically on access.
func (ix Ix) SameArena(id uint64) bool {
	return ix.ArenaID == id
}

// Identifier returns a uint unique among live slots within ix.Gen. Different
// generations may reuse identifiers; callers that need cross-generation
// stability should track generation alongside it.
func (ix Ix) Identifier() uint64 {
	return uint64(ix.Gen)<<32 | uint64(ix.Pos)
}

func (ix Ix) String() string {
	return fmt.Sprintf("Ix{pos:%d gen:%d}", ix.Pos, ix.Gen)
}
