package deck

// PutSparse distributes a batch of new items across the draw pile at
// roughly even, randomly jittered depths. The current pile is
// partitioned into len(elements) contiguous buckets whose sizes differ
// by at most one (earlier buckets take the remainder first), and the
// i-th element is inserted at a uniformly random point within the i-th
// bucket. The relative order of the existing items is preserved.
//
// An empty batch is a no-op. An empty draw pile yields all-empty
// buckets, so the batch ends up at the bottom in the order given.
func (d *Deck[T]) PutSparse(elements []T) {
	n := len(elements)
	if n == 0 {
		return
	}

	spans := bucketSpans(len(d.draw), n)
	out := make([]T, 0, len(d.draw)+n)
	for i, s := range spans {
		bucket := d.draw[s.start:s.end]
		at := d.rng.IntN(len(bucket) + 1)
		out = append(out, bucket[:at]...)
		out = append(out, elements[i])
		out = append(out, bucket[at:]...)
	}
	d.draw = out
}

// PutSparseOne inserts one copy of x into each of the given number of
// buckets. It is the single-value form of PutSparse; buckets == 0 is a
// no-op.
func (d *Deck[T]) PutSparseOne(x T, buckets int) {
	if buckets <= 0 {
		return
	}
	batch := make([]T, buckets)
	for i := range batch {
		batch[i] = x
	}
	d.PutSparse(batch)
}

type span struct {
	start, end int
}

// bucketSpans partitions [0, total) into n contiguous ranges using
// standard remainder distribution: the first total%n ranges hold
// total/n+1 items, the rest hold total/n. Ranges may be empty when
// n > total.
func bucketSpans(total, n int) []span {
	size, carry := total/n, total%n
	spans := make([]span, n)
	start := 0
	for i := range spans {
		end := start + size
		if i < carry {
			end++
		}
		spans[i] = span{start: start, end: end}
		start = end
	}
	return spans
}
