package filesort

// CompareFunc is a function type for comparing two records of type T.
// It must implement a strict total order and be consistent for the whole sort.
// Returns a negative integer if a should be ordered before b, zero if they are equal,
// and a positive integer if a should be ordered after b in the final sorted output.
// Two records are duplicates for Config.Unique exactly when it returns zero.
// This follows the same semantics as cmp.Compare.
type CompareFunc[T any] func(a, b T) int

// Logger receives human readable progress messages during a sort.
type Logger func(msg string)
