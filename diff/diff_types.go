package diff

import "fmt"

// Delta classifies a record found while comparing two sorted streams.
type Delta int

const (
	// NEW indicates a record that exists only in the second stream (B).
	NEW Delta = iota // +

	// OLD indicates a record that exists only in the first stream (A).
	OLD // -

	// COMMON indicates a record present in both streams.
	COMMON
)

// ResultFunc is called for every record of both streams with its Delta.
// A record present in both streams is reported once, with the value from A.
// If the function returns an error, the diff operation stops and returns it.
type ResultFunc[T any] func(Delta, T) error

// CompareFunc returns <0, 0 or >0 when a sorts before, equal to or after b.
type CompareFunc[T any] func(a, b T) int

func (d Delta) String() string {
	switch d {
	case NEW:
		return ">"
	case OLD:
		return "<"
	case COMMON:
		return "="
	default:
		return "?"
	}
}

// Result contains statistical information about the differences between two sorted streams.
type Result struct {
	// ExtraA is the count of records that exist only in stream A (OLD records)
	ExtraA uint64

	// ExtraB is the count of records that exist only in stream B (NEW records)
	ExtraB uint64

	// TotalA is the total count of records processed from stream A
	TotalA uint64

	// TotalB is the total count of records processed from stream B
	TotalB uint64

	// Common is the count of records that exist in both streams
	Common uint64
}

func (r *Result) String() string {
	return fmt.Sprintf("A: %d/%d\tB: %d/%d\tC: %d", r.ExtraA, r.TotalA, r.ExtraB, r.TotalB, r.Common)
}

// Differences wraps fn so it only sees records that are not COMMON.
func Differences[T any](fn ResultFunc[T]) ResultFunc[T] {
	return func(d Delta, rec T) error {
		if d == COMMON {
			return nil
		}
		return fn(d, rec)
	}
}

// Print is a ResultFunc printing every record to stdout prefixed with its
// Delta symbol (< for OLD, > for NEW, = for COMMON).
func Print[T any](d Delta, rec T) error {
	_, err := fmt.Printf("%s %v\n", d, rec)
	return err
}
