package args

import (
	"bytes"
	"io"
	"os"
)

// Source supplies the bytes of a file-valued argument. File system
// access stays behind this interface so encoders never touch paths
// directly.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Bytes returns a Source reading from an in-memory byte slice.
func Bytes(b []byte) Source { return bytesSource(b) }

type bytesSource []byte

func (s bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s)), nil
}

// Path returns a Source opening the file at path on each use.
func Path(path string) Source { return pathSource(path) }

type pathSource string

func (s pathSource) Open() (io.ReadCloser, error) {
	return os.Open(string(s))
}
