// Package api groups the mall services built on the request client. Each
// subpackage wraps one backend resource under /api/v1 and maps backend
// records into the shapes the storefront pages render.
package api
