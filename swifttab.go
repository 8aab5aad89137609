// # SwiftTab: A Streaming Tabular Extraction Library for Go
//
// SwiftTab is a streaming, RFC 4180 compatible tabular-text engine. A byte-level
// state machine over a fixed read-ahead buffer tokenizes rows in a single pass,
// and a generic extraction pipeline projects each row down to a caller-declared
// column subset before handing it to a typed record constructor. Retained
// memory is bounded by the number of used columns, not by file width.
//
// # Features
//
// - Buffered byte source with peek/consume primitives and no per-byte syscalls.
// - Three-state quote tokenizer with configurable delimiters and a strict or
//   lenient malformed-quoting policy.
// - Header index built once per stream with a configurable duplicate-name policy.
// - Generic pipeline (`Pipeline[T]`) driven by a small `RecordReader[T]`
//   capability set: used columns, default values, record construction.
// - Per-field conversion failures mark records invalid instead of aborting the
//   stream; structural failures (I/O, missing header) abort the session.
// - Dialect-matched `Writer` for round-trip emission.
//
// Concrete readers for population, property and service-request data live in
// the records subpackage and reuse the pipeline unchanged.
package swifttab
