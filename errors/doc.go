// Package errors defines the rejection value of the mall request client.
//
// Every failed call surfaces a *ClientError carrying one of three
// categories: Network (no response, or a non-2xx HTTP status), Unauthorized
// (application code 401) and Application (any other non-success application
// code). Callers branch with errors.As or the Is* helpers:
//
//	if errors.IsUnauthorized(err) {
//	    // credentials were already cleared by the client
//	}
package errors
