package digest

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestBatch(t *testing.T) {
	got := Batch(seq(7), 3)
	want := [][]int{{0, 1, 2}, {3, 4, 5}, {6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Batch(7, 3) mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchEmpty(t *testing.T) {
	assert.Empty(t, Batch([]int{}, 3))
	assert.Empty(t, Batch[int](nil, 3))
}

func TestBatchPartitions(t *testing.T) {
	for n := 0; n <= 20; n++ {
		for _, size := range []int{1, 2, 3, 5} {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				items := seq(n)
				chunks := Batch(items, size)

				assert.Len(t, chunks, (n+size-1)/size)
				for i, chunk := range chunks {
					assert.NotEmpty(t, chunk)
					if i < len(chunks)-1 {
						assert.Len(t, chunk, size)
					} else {
						assert.LessOrEqual(t, len(chunk), size)
					}
				}

				if diff := cmp.Diff(items, slices.Concat(chunks...), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("concatenated chunks differ (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestBatchPanicsOnZeroSize(t *testing.T) {
	assert.Panics(t, func() { Batch(seq(3), 0) })
}
