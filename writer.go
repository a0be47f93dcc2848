package streamcsv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

var (
	errNilWriter      = errors.New("streamcsv: writer is nil")
	errWriterNoTarget = errors.New("streamcsv: writer destination cannot be nil")
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Writer encodes fields and records to a byte stream according to a
// Dialect fixed at construction. Output is buffered; call Flush to push
// pending bytes to the destination.
//
// A Writer is bound to one stream and is not safe for concurrent use.
type Writer struct {
	dst *bufio.Writer

	delim byte
	quote byte
	term  Terminator
	// special holds the octets whose presence in a field forces quoting.
	special     []byte
	alwaysQuote bool
	bomEmit     bool

	needBOM bool
	mid     bool
	err     error
}

// NewWriter creates a Writer that encodes to w using dialect d, panicking
// if w is nil.
func NewWriter(w io.Writer, d Dialect) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}

	quote := d.writeQuote()
	special := []byte{d.delimiter(), quote}
	if d.Terminator.IsCRLF() {
		special = append(special, '\r', '\n')
	} else {
		special = append(special, d.Terminator.b)
	}

	return &Writer{
		dst:         bufio.NewWriterSize(w, defaultBufferSize),
		delim:       d.delimiter(),
		quote:       quote,
		term:        d.Terminator,
		special:     special,
		alwaysQuote: d.AlwaysQuote,
		bomEmit:     d.BOM == BOMEmit,
		needBOM:     d.BOM == BOMEmit,
	}
}

// Reset discards any sticky error and points the Writer at a new
// destination stream, re-arming BOM emission for it. The dialect is
// preserved.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.needBOM = w.bomEmit
	w.mid = false
	w.err = nil
}

// WriteField appends one field to the record in progress, preceded by a
// delimiter unless it is the record's first field. The field is quoted,
// with embedded quote octets doubled, exactly when it contains one of the
// dialect's delimiter, quote, or terminator octets (or always, under
// AlwaysQuote); otherwise it is written verbatim.
func (w *Writer) WriteField(field []byte) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	if err := w.begin(); err != nil {
		w.err = err
		return err
	}
	if w.mid {
		if err := w.dst.WriteByte(w.delim); err != nil {
			w.err = err
			return err
		}
	}
	w.mid = true

	if err := w.writeField(field); err != nil {
		w.err = err
		return err
	}
	return nil
}

// TerminateRecord ends the record in progress by writing the terminator:
// the fixed octet, or "\r\n" in CRLF mode. A record with no preceding
// WriteField is written as a bare terminator, which decodes as a single
// empty field.
func (w *Writer) TerminateRecord() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	if err := w.begin(); err != nil {
		w.err = err
		return err
	}

	var err error
	if w.term.IsCRLF() {
		_, err = w.dst.Write([]byte{'\r', '\n'})
	} else {
		err = w.dst.WriteByte(w.term.b)
	}
	if err != nil {
		w.err = err
		return err
	}
	w.mid = false
	return nil
}

// WriteRecord writes one complete record: every field in order, then the
// terminator. It panics if a partial record is pending from an earlier
// WriteField without a matching TerminateRecord; interleaving the two
// styles on one record is a caller bug, not a condition to paper over.
func (w *Writer) WriteRecord(fields ...[]byte) error {
	if w == nil {
		return errNilWriter
	}
	if w.mid {
		panic("streamcsv: WriteRecord called with a partial record pending")
	}
	for _, field := range fields {
		if err := w.WriteField(field); err != nil {
			return err
		}
	}
	return w.TerminateRecord()
}

// WriteRecordStrings is WriteRecord for string fields.
func (w *Writer) WriteRecordStrings(fields ...string) error {
	if w == nil {
		return errNilWriter
	}
	if w.mid {
		panic("streamcsv: WriteRecord called with a partial record pending")
	}
	for _, field := range fields {
		if err := w.WriteField([]byte(field)); err != nil {
			return err
		}
	}
	return w.TerminateRecord()
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

// begin emits the BOM if the dialect asks for one and none has been
// written to this stream yet.
func (w *Writer) begin() error {
	if !w.needBOM {
		return nil
	}
	w.needBOM = false
	_, err := w.dst.Write(bom)
	return err
}

func (w *Writer) writeField(field []byte) error {
	if !w.alwaysQuote && !w.needsQuote(field) {
		_, err := w.dst.Write(field)
		return err
	}

	if err := w.dst.WriteByte(w.quote); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == w.quote {
			if start < i {
				if _, err := w.dst.Write(field[start:i]); err != nil {
					return err
				}
			}
			if _, err := w.dst.Write([]byte{w.quote, w.quote}); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(field) {
		if _, err := w.dst.Write(field[start:]); err != nil {
			return err
		}
	}
	return w.dst.WriteByte(w.quote)
}

func (w *Writer) needsQuote(field []byte) bool {
	for _, b := range w.special {
		if bytes.IndexByte(field, b) >= 0 {
			return true
		}
	}
	return false
}
