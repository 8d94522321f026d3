package adapter

import (
	"io"
	"os"
)

// BreakWriterForTest swaps the temp file of a file storage writer for a
// read-only handle so the next Write fails
func BreakWriterForTest(w io.WriteCloser) error {
	f := w.(*atomicFile)
	ro, err := os.Open(f.file.Name())
	if err != nil {
		return err
	}
	if err := f.file.Close(); err != nil {
		return err
	}
	f.file = ro
	return nil
}
