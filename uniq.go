package filesort

import "github.com/lanrat/filesort/codec"

// uniqWriter passes records through to w. When unique is set it drops any
// record that compares equal to the previously written one, which removes
// every duplicate as long as records arrive in sorted order.
type uniqWriter[T any] struct {
	w       codec.Writer[T]
	compare CompareFunc[T]
	unique  bool
	last    T
	written int64
}

func (u *uniqWriter[T]) Write(rec T) error {
	if u.unique && u.written > 0 && u.compare(rec, u.last) == 0 {
		return nil
	}
	if err := u.w.Write(rec); err != nil {
		return err
	}
	u.last = rec
	u.written++
	return nil
}
