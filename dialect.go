package streamcsv

// Terminator selects how records end. The zero value is CRLF mode: the
// writer emits "\r\n" after every record while the reader accepts a lone
// CR, a lone LF, or a CR LF pair as a record end. TerminatorByte selects
// a single fixed octet instead.
type Terminator struct {
	b byte
}

// CRLF returns the CRLF-mode terminator. It is the zero value of
// Terminator and the RFC 4180 default.
func CRLF() Terminator {
	return Terminator{}
}

// TerminatorByte returns a terminator that matches exactly the octet b.
// Passing zero selects CRLF mode.
func TerminatorByte(b byte) Terminator {
	return Terminator{b: b}
}

// IsCRLF reports whether the terminator is in CRLF mode.
func (t Terminator) IsCRLF() bool {
	return t.b == 0
}

// matches reports whether b ends a record under this terminator.
func (t Terminator) matches(b byte) bool {
	if t.b == 0 {
		return b == '\r' || b == '\n'
	}
	return b == t.b
}

// BOMPolicy controls handling of a UTF-8 byte-order mark (EF BB BF) at
// the start of a stream.
type BOMPolicy int

const (
	// BOMDiscard drops a leading BOM when reading and emits none when
	// writing. Default.
	BOMDiscard BOMPolicy = iota
	// BOMEmit drops a leading BOM when reading and emits one at the
	// start of the written stream.
	BOMEmit
	// BOMKeep treats a leading BOM as ordinary data of the first field
	// and emits none when writing.
	BOMKeep
)

// Dialect describes the byte-level grammar a Reader or Writer speaks.
// The zero value is the RFC 4180 default: comma delimiter, double-quote
// quoting, CRLF terminator, leading BOM discarded. A Dialect is consulted
// once at Reader/Writer construction; mutating it afterwards has no
// effect on codecs already built from it.
//
// Delimiter, Quote, and the terminator octet should be distinct for an
// unambiguous grammar. Overlapping values are not rejected; they produce
// implementation-defined parses.
type Dialect struct {
	// Delimiter is the field separator. Zero means ','.
	Delimiter byte
	// Quote is the quote octet. Zero means '"'.
	Quote byte
	// NoQuote disables quote handling when reading, so quote octets are
	// ordinary field data. The writer still escapes with '"' when a
	// field requires quoting.
	NoQuote bool
	// Terminator ends each record. The zero value is CRLF mode.
	Terminator Terminator
	// BOM governs the byte-order mark at stream start.
	BOM BOMPolicy
	// AlwaysQuote forces the writer to quote every field.
	AlwaysQuote bool
}

// delimiter returns the effective field separator.
func (d Dialect) delimiter() byte {
	if d.Delimiter == 0 {
		return ','
	}
	return d.Delimiter
}

// readQuote returns the quote octet the reader honours and whether quote
// handling is enabled at all.
func (d Dialect) readQuote() (byte, bool) {
	if d.NoQuote {
		return 0, false
	}
	if d.Quote == 0 {
		return '"', true
	}
	return d.Quote, true
}

// writeQuote returns the quote octet the writer escapes with. Quoting
// cannot be disabled for writing; a dialect with NoQuote set falls back
// to '"'.
func (d Dialect) writeQuote() byte {
	if d.NoQuote || d.Quote == 0 {
		return '"'
	}
	return d.Quote
}
