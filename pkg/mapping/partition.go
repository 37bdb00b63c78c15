package mapping

// chunksPerThread controls partition granularity. Finer than the thread
// count so that uneven per-pair cost balances across workers.
const chunksPerThread = 10

// Partition splits a sorted pair sequence into contiguous chunks. With one
// thread the whole input is a single chunk; otherwise the input is split
// into about chunksPerThread*threads chunks of at least one pair each.
// Deterministic: same input and thread count, same partition.
func Partition[T any](items []T, threads int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if threads <= 1 {
		return [][]T{items}
	}

	numChunks := chunksPerThread * threads
	chunkSize := (len(items) + numChunks - 1) / numChunks
	if chunkSize < 1 {
		chunkSize = 1
	}

	chunks := make([][]T, 0, (len(items)+chunkSize-1)/chunkSize)
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
