package patch

// Coalesce returns *ptr when set, otherwise fallback. Optional seed fields use it for their defaults.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
