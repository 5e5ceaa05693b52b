package dataset

import (
	"github.com/hanling14/graphchi-ltr/internal/model"
)

// Shards distributes the query groups round robin over n partitions.
// A query group never spans shards, since it is the unit of pairwise work.
// Fewer groups than shards yields fewer, non-empty shards.
func (d *Dataset) Shards(n int) [][]model.QueryGroup {
	if n < 1 {
		n = 1
	}
	if n > len(d.Groups) {
		n = len(d.Groups)
	}
	if n == 0 {
		return nil
	}
	shards := make([][]model.QueryGroup, n)
	for i, g := range d.Groups {
		shards[i%n] = append(shards[i%n], g)
	}
	return shards
}
