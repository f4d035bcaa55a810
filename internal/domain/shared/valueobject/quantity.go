package valueobject

// ApplyClampedDelta adds delta to current and floors the result at zero.
// The second return value reports whether the floor was hit.
func ApplyClampedDelta(current, delta int64) (int64, bool) {
	next := current + delta
	if next < 0 {
		return 0, true
	}
	return next, false
}
