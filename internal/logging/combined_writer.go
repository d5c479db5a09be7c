package logging

import (
	"io"
	"os"

	"go.uber.org/multierr"
)

// CombinedWriter writes every message to all of its writers.
// A failing writer does not stop the others; the errors are combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes every writer that is an io.Closer, except stdout and stderr.
func (cw *CombinedWriter) Close() error {
	var err error
	for _, w := range cw.Writers {
		if isStdStream(w) {
			continue
		}
		if c, ok := w.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

func isStdStream(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr)
}
