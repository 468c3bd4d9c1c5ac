package domain

// ColorIndex picks a palette slot for the row at index.
// It is index mod paletteSize, kept in [0, paletteSize) for negative indices.
// A non-positive paletteSize yields 0.
func ColorIndex(index, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	i := index % paletteSize
	if i < 0 {
		i += paletteSize
	}
	return i
}
