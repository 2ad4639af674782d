// Package sink provides driven.RecordSink adapters that write extracted
// records to an output stream.
//
// Adapters:
//   - JSONLinesSink: one JSON object per line, for pipelines
//   - TextSink: a short human readable block per record
//   - MultiSink: fans a record out to several sinks
package sink
