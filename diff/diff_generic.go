// Package diff compares two sorted streams or files of records and reports
// the records found in only one of them, or in both. Inputs must already be
// sorted by the comparison function; this is not validated.
package diff

import (
	"context"
	"fmt"
)

// differ holds the state for comparing two sorted channels of type T.
type differ[T any] struct {
	ctx          context.Context
	aChan, bChan <-chan T
	resultFunc   ResultFunc[T]
	compare      CompareFunc[T]
	r            Result
}

// Channels compares two sorted channels of records and calls resultFunc for
// every record read, in merged order. It returns once both channels are
// closed, the context is done, or resultFunc fails. Errors of the goroutines
// producing the channels are the caller's to collect.
func Channels[T any](ctx context.Context, aChan, bChan <-chan T, compare CompareFunc[T], resultFunc ResultFunc[T]) (Result, error) {
	if ctx == nil || aChan == nil || bChan == nil || compare == nil || resultFunc == nil {
		return Result{}, fmt.Errorf("arguments must not be nil")
	}
	d := differ[T]{
		ctx:        ctx,
		aChan:      aChan,
		bChan:      bChan,
		resultFunc: resultFunc,
		compare:    compare,
	}
	err := d.diff()
	return d.r, err
}

func (d *differ[T]) recv(ch <-chan T) (T, bool, error) {
	select {
	case v, ok := <-ch:
		return v, ok, nil
	case <-d.ctx.Done():
		var zero T
		return zero, false, d.ctx.Err()
	}
}

func (d *differ[T]) diff() error {
	dataA, okA, err := d.recv(d.aChan)
	if err != nil {
		return err
	}
	dataB, okB, err := d.recv(d.bChan)
	if err != nil {
		return err
	}

	for okA && okB {
		c := d.compare(dataA, dataB)
		switch {
		case c > 0:
			d.r.TotalB++
			d.r.ExtraB++
			if err = d.resultFunc(NEW, dataB); err != nil {
				return err
			}
			if dataB, okB, err = d.recv(d.bChan); err != nil {
				return err
			}
		case c < 0:
			d.r.TotalA++
			d.r.ExtraA++
			if err = d.resultFunc(OLD, dataA); err != nil {
				return err
			}
			if dataA, okA, err = d.recv(d.aChan); err != nil {
				return err
			}
		default:
			d.r.Common++
			d.r.TotalA++
			d.r.TotalB++
			if err = d.resultFunc(COMMON, dataA); err != nil {
				return err
			}
			if dataA, okA, err = d.recv(d.aChan); err != nil {
				return err
			}
			if dataB, okB, err = d.recv(d.bChan); err != nil {
				return err
			}
		}
	}

	// if only A has data left
	for okA {
		d.r.TotalA++
		d.r.ExtraA++
		if err = d.resultFunc(OLD, dataA); err != nil {
			return err
		}
		if dataA, okA, err = d.recv(d.aChan); err != nil {
			return err
		}
	}
	// if only B has data left
	for okB {
		d.r.TotalB++
		d.r.ExtraB++
		if err = d.resultFunc(NEW, dataB); err != nil {
			return err
		}
		if dataB, okB, err = d.recv(d.bChan); err != nil {
			return err
		}
	}
	return nil
}
