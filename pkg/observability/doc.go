/*
Package observability provides lifecycle hooks for monitoring a running flow.

Metrics feeds Prometheus counters and histograms from state and transition
events; LoggingHooks writes the same events to a slog.Logger; Chain combines
hook sets so both can be installed on one controller.
*/
package observability
