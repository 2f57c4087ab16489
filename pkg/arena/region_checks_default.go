//go:build !debugvalidity

package arena

// checkIx is the release build's validity check: none. Debug-index-validity
// is an opt-in build tag precisely because the checks below
// (region_checks_debug.go) cost real work — an arena-id compare, a
// generation compare, and a bounds-checked live-state read — on every single
// Get/GetMut call. Release code pays nothing for a check it did not ask for.
func checkIx[T any](r *Region[T], ix Ix) error {
	return nil
}

// DebugValidityEnabled reports whether this build was compiled with the
// debugvalidity build tag. Exposed so callers (and arenainspect) can tell
// which build they're running without inspecting build flags themselves.
func DebugValidityEnabled() bool { return false }
