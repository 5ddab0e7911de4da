// Package logger provides structured logging for mallkit using zerolog.
//
// Loggers are scoped per component so request, credential and effect
// activity can be filtered independently:
//
//	log := logger.Get("request")
//	log.Debug("request completed", logger.Fields("method", "GET", "path", "/api/v1/cart"))
//
// The CLI writes logs to stderr by default so command output on stdout stays
// machine readable.
package logger
