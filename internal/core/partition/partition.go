package partition

import "hash/fnv"

// Count is the fixed number of logical partitions.
// Never changes after initial deployment: pre-aggregate rows are keyed by it.
const Count = 256

// For returns the partition ID for a series name.
// Stable and deterministic: the same series always maps to the same partition.
func For(series string) int {
	h := fnv.New32a()
	h.Write([]byte(series))
	return int(h.Sum32() % Count)
}
