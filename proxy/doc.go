// Package proxy provides an asynchronous REST invocation client: it
// encodes named arguments into query strings, form bodies, or
// multipart bodies, executes the request, classifies the response,
// and delivers a typed outcome to a callback on a serialized dispatch
// executor.
//
// # Building a Proxy
//
// Use [Build] with functional options:
//
//	p, err := proxy.Build("https://api.example.com",
//		proxy.WithTimeout(10*time.Second),
//		proxy.WithUserAgent("myapp/1.0"),
//		proxy.WithHeader("Authorization", "Bearer "+token),
//	)
//	defer p.Close()
//
// # Invoking
//
// A [Call] pairs a method and path with an argument map. Argument
// placement is automatic: every method except a bodyless POST carries
// them in the query string; a bodyless POST carries them in the body
// using the proxy's [Encoding] mode.
//
//	var user User
//	inv := p.Invoke(ctx, proxy.Call{
//		Method: http.MethodGet,
//		Path:   "/users",
//		Args:   args.NewMap().Set("id", args.Int(42)),
//		Into:   &user,
//	}, func(out proxy.Outcome) {
//		if !out.OK() {
//			log.Println("call failed:", out.Err)
//			return
//		}
//		// user is populated here
//	})
//
// The callback runs exactly once, on the proxy's dispatch executor,
// strictly after the response body has been decoded on a worker
// goroutine. [Invocation.Cancel] aborts a call best-effort; a
// cancelled call is delivered as a failure matching [ErrCancelled].
//
// # Outcomes
//
// Non-2xx responses become a [StatusError] carrying the status code
// and a message: the body itself for text/* responses, the standard
// reason phrase otherwise. Transport failures wrap [ErrTransport],
// and a body that fails to decode downgrades an otherwise successful
// call to a failure wrapping [ErrDecode]. The proxy never retries;
// every call ends in exactly one delivered outcome.
//
// # Batching
//
// A [Queue] runs many invocations under a concurrency cap:
//
//	q := proxy.NewQueue(4)
//	for _, call := range calls {
//		q.Invoke(ctx, p, call, nil)
//	}
//	err := q.Wait()
package proxy
