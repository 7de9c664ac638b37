package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newChainServer serves canned price, height and difficulty endpoints.
func newChainServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/price", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bitcoin":{"usd":67123.4}}`)
	})
	mux.HandleFunc("/height", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "870123")
	})
	mux.HandleFunc("/difficulty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "25000000000000")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
