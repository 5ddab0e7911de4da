// Package testutil provides a fake mall backend and a wired request client
// for package tests.
//
// # Quick Start
//
//	func TestCart(t *testing.T) {
//	    b := testutil.NewBackend(t)
//	    b.Reply(http.MethodGet, "/api/v1/cart", 200, "ok", []any{})
//	    h := testutil.NewHarness(t, b.URL(), request.Config{})
//	    // h.Client talks to b; h.Recorder captures toasts and redirects
//	}
//
// The backend and every harness are released through t.Cleanup.
package testutil
