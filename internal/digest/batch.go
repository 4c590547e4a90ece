package digest

import "slices"

// Batch splits items into consecutive chunks of unitSize. Every chunk but the
// last has exactly unitSize items, order is preserved and no chunk is empty.
// unitSize must be positive.
func Batch[T any](items []T, unitSize int) [][]T {
	if unitSize < 1 {
		panic("digest: unit size must be positive")
	}

	chunks := make([][]T, 0, (len(items)+unitSize-1)/unitSize)
	for chunk := range slices.Chunk(items, unitSize) {
		chunks = append(chunks, chunk)
	}
	return chunks
}
