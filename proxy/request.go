package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/adamwoolhether/restcall/proxy/args"
)

// Encoding selects how POST arguments are carried when no explicit
// body is supplied. It is a property of the proxy, read at encode
// time.
type Encoding uint8

const (
	// FormEncoded sends arguments as an
	// application/x-www-form-urlencoded body.
	FormEncoded Encoding = iota
	// Multipart sends arguments as a multipart/form-data body with a
	// fresh random boundary per call.
	Multipart
)

// Call describes one REST invocation against the proxy's base URL.
type Call struct {
	// Method must be one of GET, POST, PUT, PATCH, DELETE.
	Method string
	// Path is joined onto the proxy's base URL.
	Path string
	// Args carries the named arguments. Placement follows the method:
	// everything except a bodyless POST puts them in the query string.
	Args *args.Map
	// Body, when non-nil, is sent verbatim as the request body and
	// forces Args into the query string regardless of method.
	Body []byte
	// ContentType labels Body. Empty defaults to
	// application/octet-stream.
	ContentType string
	// Header holds per-call headers, overriding the proxy defaults.
	Header http.Header
	// Into, when non-nil, receives the JSON-decoded response body.
	// Decoding runs on the worker goroutine, never on the dispatch
	// executor. On failure its contents are undefined and the call
	// fails.
	Into any
}

// buildRequest assembles the transport-ready request. Arguments land
// in the query string when the method is not POST or an explicit body
// is present; a bodyless POST carries them in the body per mode.
func (p *Proxy) buildRequest(ctx context.Context, call Call, mode Encoding) (*http.Request, error) {
	switch call.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrMethod, call.Method)
	}

	u := p.base.JoinPath(call.Path)

	var (
		body      []byte
		encodedCT string
	)

	if call.Method != http.MethodPost || call.Body != nil {
		if call.Args.Len() > 0 {
			u.RawQuery = args.Query(call.Args)
		}
		body = call.Body
	} else {
		switch mode {
		case Multipart:
			boundary := args.Boundary()
			b, err := args.Multipart(call.Args, boundary)
			if err != nil {
				return nil, fmt.Errorf("encoding multipart body: %w", err)
			}
			body = b
			encodedCT = fmt.Sprintf("multipart/form-data; boundary=%s", boundary)
		default:
			body = args.Form(call.Args)
			encodedCT = "application/x-www-form-urlencoded"
		}
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, u.String(), rdr)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	for k, vv := range p.header {
		req.Header[http.CanonicalHeaderKey(k)] = slices.Clone(vv)
	}
	for k, vv := range call.Header {
		req.Header[http.CanonicalHeaderKey(k)] = slices.Clone(vv)
	}

	switch {
	case call.Body != nil:
		switch {
		case call.ContentType != "":
			req.Header.Set("Content-Type", call.ContentType)
		case req.Header.Get("Content-Type") == "":
			req.Header.Set("Content-Type", "application/octet-stream")
		}
	case encodedCT != "":
		// The assembler owns Content-Type whenever it encoded the body.
		req.Header.Set("Content-Type", encodedCT)
	}

	return req, nil
}
