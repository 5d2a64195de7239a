package proxy_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/adamwoolhether/restcall/proxy"
	"github.com/adamwoolhether/restcall/proxy/args"
)

func ExampleBuild() {
	p, err := proxy.Build("https://api.example.com",
		proxy.WithTimeout(10*time.Second),
		proxy.WithUserAgent("example/1.0"),
		proxy.WithHeader("X-Api-Key", "secret"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer p.Close()

	fmt.Println("proxy built")
	// Output: proxy built
}

func ExampleProxy_Invoke() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"greeting":"hello %s"}`, r.URL.Query().Get("name"))
	}))
	defer ts.Close()

	p, err := proxy.Build(ts.URL)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer p.Close()

	var resp struct {
		Greeting string `json:"greeting"`
	}

	inv := p.Invoke(context.Background(), proxy.Call{
		Method: http.MethodGet,
		Path:   "/greet",
		Args:   args.NewMap().Set("name", args.String("alice")),
		Into:   &resp,
	}, nil)

	if out := inv.Outcome(); !out.OK() {
		fmt.Println("error:", out.Err)
		return
	}

	fmt.Println(resp.Greeting)
	// Output: hello alice
}

func ExampleInvocation_Cancel() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	p, err := proxy.Build(ts.URL)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer p.Close()

	inv := p.Invoke(context.Background(), proxy.Call{
		Method: http.MethodGet,
		Path:   "/slow",
	}, nil)

	inv.Cancel()

	out := inv.Outcome()
	fmt.Println("success:", out.OK())
	// Output: success: false
}
