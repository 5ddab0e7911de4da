// Package version reports the build version of mallkit commands. Values
// come from -ldflags when set and from the Go VCS build stamp otherwise.
package version
