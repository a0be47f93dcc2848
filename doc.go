// # streamcsv: A Dialect-Aware Streaming CSV Codec for Go
//
// streamcsv decodes and encodes RFC 4180 CSV as raw octet streams, one record at a time, with a small set of documented permissive deviations and full control over the wire dialect.
//
// # Features
//
// - Byte-exact streaming `Reader` driven by an explicit state machine: quoted fields spanning lines, doubled-quote escapes, and mixed quoted/unquoted runs.
// - Buffered `Writer` with minimal quoting, doubled-quote escaping, and optional forced quoting.
// - `Dialect` value configuring delimiter, quote (or none), fixed-octet or CRLF terminators, and UTF-8 BOM policy.
// - Reusable `Record` field buffers for allocation-stable decoding of large inputs, with per-record source line numbers.
// - Permissive by design: bare quotes and unterminated quoted fields are data, not errors; a false BOM prefix is kept, not lost.
//
// # Getting Started
//
// Construct one `Dialect` value, bind a `Reader` or `Writer` to an open stream with it, and drive a `Record` through `Reader.Read` in a loop or push fields through `Writer.WriteField` and `Writer.TerminateRecord`. The zero `Dialect` speaks standard comma/double-quote/CRLF CSV.
package streamcsv
