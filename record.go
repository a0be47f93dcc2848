package streamcsv

// Record holds one decoded row: an ordered sequence of byte-slice fields
// plus the physical line the row started on. A Record is created by the
// caller, handed to Reader.Read for each decode, and keeps its field
// buffers across reads so that steady-state decoding allocates nothing.
//
// Field data is only valid until the next Read or Clear; callers that
// need to retain a field must copy it.
type Record struct {
	fields [][]byte
	n      int
	line   int
}

// Clear resets the record to zero fields. Field buffers are truncated,
// not freed, so their capacity is reused by subsequent reads.
func (r *Record) Clear() {
	for i := range r.fields {
		r.fields[i] = r.fields[i][:0]
	}
	r.n = 0
	r.line = 0
}

// Len returns the number of decoded fields.
func (r *Record) Len() int {
	return r.n
}

// Line returns the physical source line (1-based) the record began on.
// A record spanning several lines through quoted terminators reports its
// first line.
func (r *Record) Line() int {
	return r.line
}

// Field returns field i. It panics if i is out of range; use Get when
// the index is not known to be valid.
func (r *Record) Field(i int) []byte {
	if i < 0 || i >= r.n {
		panic("streamcsv: field index out of range")
	}
	return r.fields[i]
}

// Get returns field i, or nil when i is out of range.
func (r *Record) Get(i int) []byte {
	if i < 0 || i >= r.n {
		return nil
	}
	return r.fields[i]
}

// Strings returns a newly allocated copy of all fields as strings.
func (r *Record) Strings() []string {
	out := make([]string, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = string(r.fields[i])
	}
	return out
}

// push completes the in-progress field, allocating an empty buffer if no
// octet was appended, so a record always carries at least one field.
func (r *Record) push() {
	if r.n == len(r.fields) {
		r.fields = append(r.fields, nil)
	}
	r.n++
}

// appendByte adds one octet to the in-progress field.
func (r *Record) appendByte(b byte) {
	if r.n == len(r.fields) {
		r.fields = append(r.fields, nil)
	}
	r.fields[r.n] = append(r.fields[r.n], b)
}

// appendBytes adds a run of octets to the in-progress field.
func (r *Record) appendBytes(p []byte) {
	if r.n == len(r.fields) {
		r.fields = append(r.fields, nil)
	}
	r.fields[r.n] = append(r.fields[r.n], p...)
}
