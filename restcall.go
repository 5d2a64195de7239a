// Package restcall exposes the proxy builder.
package restcall

import (
	"github.com/adamwoolhether/restcall/proxy"
)

// NewProxy instantiates a new *Proxy for baseURL with the provided options.
// If not specified, the default http.Client and http.Transport are used.
func NewProxy(baseURL string, opts ...proxy.Option) (*proxy.Proxy, error) {
	return proxy.Build(baseURL, opts...)
}
