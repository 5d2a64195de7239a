package args

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Query encodes m as a URL query component: one key=value pair per
// occurrence, joined by "&". A list argument contributes one pair per
// element in list order; a Null occurrence contributes nothing. Keys
// and values are percent-encoded with space as %20, and "+" always
// appears as %2B so it can never be misread as an encoded space.
func Query(m *Map) string {
	var sb strings.Builder

	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		for _, occ := range occurrences(v) {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(queryEscape(key))
			sb.WriteByte('=')
			sb.WriteString(queryEscape(occ.String()))
		}
	}

	return sb.String()
}

// Form encodes m as an application/x-www-form-urlencoded request
// body. The encoding is byte-identical to [Query].
func Form(m *Map) []byte {
	return []byte(Query(m))
}

// Multipart encodes m as a multipart/form-data body delimited by
// boundary. Scalar occurrences become plain form-data parts; file
// occurrences carry a filename and Content-Type
// application/octet-stream. A file whose source cannot be opened or
// read yields a part with an empty body rather than failing the whole
// encode; callers needing a hard failure should verify their sources
// before building the Map.
func Multipart(m *Map, boundary string) ([]byte, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("setting boundary: %w", err)
	}

	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		for _, occ := range occurrences(v) {
			if err := writePart(w, key, occ); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("terminating multipart body: %w", err)
	}

	return buf.Bytes(), nil
}

// Boundary returns a fresh random boundary token. Each encoded body
// must use its own; boundaries are never reused across concurrent
// calls sharing a proxy.
func Boundary() string {
	return uuid.NewString()
}

func writePart(w *multipart.Writer, key string, occ Value) error {
	if occ.Kind() != KindFile {
		if err := w.WriteField(key, occ.String()); err != nil {
			return fmt.Errorf("writing field %q: %w", key, err)
		}
		return nil
	}

	f := occ.File()
	part, err := w.CreateFormFile(key, f.Name)
	if err != nil {
		return fmt.Errorf("creating file part %q: %w", key, err)
	}

	src, err := f.Source.Open()
	if err != nil {
		// Lenient: the part keeps its headers and an empty body.
		return nil
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil
	}

	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing file part %q: %w", key, err)
	}

	return nil
}

// occurrences expands v into its scalar units: list elements in list
// order, or v itself. Null units are dropped here so no encoder ever
// sees one.
func occurrences(v Value) []Value {
	var expanded []Value
	if v.Kind() == KindList {
		expanded = v.Elems()
	} else {
		expanded = []Value{v}
	}

	occs := make([]Value, 0, len(expanded))
	for _, e := range expanded {
		if e.IsNull() {
			continue
		}
		occs = append(occs, e)
	}

	return occs
}

// queryEscape percent-encodes s for a query component. QueryEscape
// substitutes "+" for spaces, which is ambiguous on the wire; the
// replacement leaves spaces as %20 and real plus signs as %2B.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
