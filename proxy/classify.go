package proxy

import (
	"fmt"
	"net/http"
	"strings"
)

// Outcome is the terminal result of one invocation, delivered exactly
// once to the call's callback. Err is nil only for a fully successful
// call: a 2xx status whose body, when a destination was supplied,
// decoded cleanly.
type Outcome struct {
	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
	Err         error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// classify maps a completed HTTP exchange onto an Outcome. 2xx passes
// through as success; anything else becomes a [StatusError] whose
// message is the UTF-8 body for text/* responses and the standard
// reason phrase otherwise.
func classify(statusCode int, contentType string, header http.Header, body []byte) Outcome {
	out := Outcome{
		StatusCode:  statusCode,
		ContentType: contentType,
		Header:      header,
		Body:        body,
	}

	if statusCode/100 == 2 {
		return out
	}

	var msg string
	if strings.HasPrefix(contentType, "text/") {
		msg = string(body)
	} else {
		msg = http.StatusText(statusCode)
	}

	cause := error(ErrStatus)
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		cause = fmt.Errorf("%w: %w", ErrAuthFailure, ErrStatus)
	}

	out.Err = &StatusError{
		StatusCode: statusCode,
		Message:    msg,
		Err:        cause,
	}

	return out
}
