/*
Package observability provides Prometheus instrumentation for the Espalier
engine.

Metrics bind to the lexer's lifecycle hooks: construct a Metrics value,
register it, and pass Metrics.Hooks() to lexer.New. The serve command
exposes the registry via promhttp on /metrics.
*/
package observability
