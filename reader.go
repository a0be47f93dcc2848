package streamcsv

import (
	"bufio"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// readerState enumerates the positions of the decode state machine.
type readerState uint8

const (
	stateEatBOM1 readerState = iota
	stateEatBOM2
	stateEatBOM3
	stateBeforeRecord
	stateEatLF
	stateBeforeField
	stateInField
	stateInQuoted
	stateQuoteInQuoted
)

// Reader decodes CSV records from a byte stream, one record per Read
// call, according to a Dialect fixed at construction.
//
// The grammar is permissive: a quote octet outside a quoted run is
// ordinary data, a field may mix quoted and unquoted runs, and a quoted
// field left open at end of stream is closed there rather than rejected.
// Malformed input therefore never produces a parse error; the only
// failures a Reader reports are those of the underlying stream.
//
// A Reader is bound to one stream and is not safe for concurrent use.
type Reader struct {
	src io.ByteReader

	delim    byte
	quote    byte
	hasQuote bool
	term     Terminator

	state  readerState
	line   int
	lastCR bool
	done   bool
}

// NewReader creates a Reader that decodes from src using dialect d,
// panicking if src is nil. If src does not implement io.ByteReader it is
// wrapped in a bufio.Reader.
func NewReader(src io.Reader, d Dialect) *Reader {
	if src == nil {
		panic("streamcsv: reader source cannot be nil")
	}
	br, ok := src.(io.ByteReader)
	if !ok {
		br = bufio.NewReaderSize(src, defaultBufferSize)
	}

	quote, hasQuote := d.readQuote()
	r := &Reader{
		src:      br,
		delim:    d.delimiter(),
		quote:    quote,
		hasQuote: hasQuote,
		term:     d.Terminator,
		state:    stateEatBOM1,
		line:     1,
	}
	if d.BOM == BOMKeep {
		r.state = stateBeforeRecord
	}
	return r
}

// Line returns the physical line (1-based) the next decode would start
// on.
func (r *Reader) Line() int {
	return r.line
}

// Read decodes the next record from the stream into rec, replacing its
// prior contents while reusing its buffers. It returns true when a
// record was decoded and false once the stream is exhausted. Errors from
// the underlying stream are returned verbatim and are terminal: neither
// the Reader nor rec may be reused after one.
//
// The final record of a stream lacking a trailing terminator is still
// delivered; the Read after it returns false.
func (r *Reader) Read(rec *Record) (bool, error) {
	if r == nil || r.src == nil {
		return false, nil
	}
	if rec == nil {
		panic("streamcsv: record cannot be nil")
	}
	if r.done {
		return false, nil
	}

	rec.Clear()
	rec.line = r.line

	for {
		b, err := r.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				r.done = true
				return r.finish(rec), nil
			}
			return false, err
		}
		r.countLine(b)
		if r.step(rec, b) {
			return true, nil
		}
	}
}

// countLine advances the physical line counter: every CR advances, and
// every LF not directly preceded by a CR advances, so a CRLF pair counts
// once.
func (r *Reader) countLine(b byte) {
	switch b {
	case '\r':
		r.line++
		r.lastCR = true
	case '\n':
		if !r.lastCR {
			r.line++
		}
		r.lastCR = false
	default:
		r.lastCR = false
	}
}

// step feeds one octet through the state machine, mutating rec, and
// reports whether the octet completed a record.
func (r *Reader) step(rec *Record, b byte) bool {
	switch r.state {
	case stateEatBOM1:
		if b == 0xEF {
			r.state = stateEatBOM2
			return false
		}
		// Nothing consumed yet; the octet opens the record normally.
		r.state = stateBeforeRecord
		return r.step(rec, b)
	case stateEatBOM2:
		if b == 0xBB {
			r.state = stateEatBOM3
			return false
		}
		// False BOM prefix: re-inject the consumed octet as field data.
		rec.appendByte(0xEF)
		r.state = stateInField
		return r.inField(rec, b)
	case stateEatBOM3:
		if b == 0xBF {
			r.state = stateBeforeRecord
			return false
		}
		rec.appendBytes([]byte{0xEF, 0xBB})
		r.state = stateInField
		return r.inField(rec, b)
	case stateEatLF:
		r.state = stateBeforeRecord
		if b == '\n' {
			return false
		}
		return r.step(rec, b)
	case stateBeforeRecord, stateBeforeField:
		if r.hasQuote && b == r.quote {
			r.state = stateInQuoted
			return false
		}
		return r.inField(rec, b)
	case stateInQuoted:
		if b == r.quote {
			r.state = stateQuoteInQuoted
			return false
		}
		rec.appendByte(b)
		return false
	case stateQuoteInQuoted:
		if b == r.quote {
			// Doubled quote inside a quoted run is an escaped quote.
			rec.appendByte(r.quote)
			r.state = stateInQuoted
			return false
		}
		// The quoted run closed; the field continues unquoted.
		return r.inField(rec, b)
	default: // stateInField
		return r.inField(rec, b)
	}
}

// inField processes one octet under unquoted-field rules. A quote octet
// here is ordinary data; only the delimiter and the terminator are
// special.
func (r *Reader) inField(rec *Record, b byte) bool {
	switch {
	case b == r.delim:
		rec.push()
		r.state = stateBeforeField
		return false
	case r.term.matches(b):
		rec.push()
		if b == '\r' {
			r.state = stateEatLF
		} else {
			r.state = stateBeforeRecord
		}
		return true
	default:
		rec.appendByte(b)
		r.state = stateInField
		return false
	}
}

// finish handles end of stream: a pending partial record is completed as
// if terminated, and false is returned only when no record was pending.
func (r *Reader) finish(rec *Record) bool {
	switch r.state {
	case stateBeforeRecord, stateEatLF, stateEatBOM1:
		return false
	case stateEatBOM2:
		rec.appendByte(0xEF)
	case stateEatBOM3:
		rec.appendBytes([]byte{0xEF, 0xBB})
	}
	rec.push()
	return true
}
