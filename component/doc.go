// Package component runs long-lived parts of a process (servers, telemetry
// exporters, backend connections) through one ordered lifecycle.
//
// Components start in registration order and stop in reverse order. A failed
// start stops whatever already started.
package component
