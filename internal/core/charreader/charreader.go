// Package charreader implements the "character reader capability" called
// for in the spec's design notes: a duck-typed reader that yields Unicode
// code points one at a time, with an implementation over an in-memory
// string and one over a buffered byte stream.
package charreader

// Reader lazily yields a finite sequence of Unicode code points.
type Reader interface {
	// Next returns the next code point. ok is false at end of stream with
	// a nil error; a non-nil error means the underlying stream failed.
	Next() (r rune, ok bool, err error)
	// Skip advances the reader by up to n code points, stopping early at
	// end of stream without error.
	Skip(n int) error
}

// skipByNext is the default Skip implementation shared by the reader
// implementations in this package: repeated Next calls. Readers that can
// seek more cheaply may override it.
func skipByNext(r Reader, n int) error {
	for i := 0; i < n; i++ {
		_, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}
