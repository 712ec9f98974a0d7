package bitstream

// Writer appends values as 5-bit groups.
type Writer struct {
	groups []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the groups written so far.
func (w *Writer) Bytes() []byte {
	return append([]byte(nil), w.groups...)
}

// Len returns the number of groups written so far.
func (w *Writer) Len() int {
	return len(w.groups)
}

// WriteUint writes v into exactly n groups, most significant group first.
func (w *Writer) WriteUint(v uint64, n int) (err error) {
	if n < 0 || n > 12 {
		return Error.New("invalid group count: %d", n)
	}

	if v>>(5*uint(n)) != 0 {
		return Error.New("value %d does not fit in %d groups", v, n)
	}

	for i := n - 1; i >= 0; i-- {
		w.groups = append(w.groups, byte(v>>(5*uint(i)))&31)
	}

	return nil
}

// MinGroups returns the fewest groups that hold v, with zero needing none.
func MinGroups(v uint64) (n int) {
	for v != 0 {
		v >>= 5
		n++
	}

	return n
}

// WriteBytes writes the bits of data regrouped into 5 bits. A trailing
// partial group is padded with zero bits.
func (w *Writer) WriteBytes(data []byte) {
	bits := len(data) * 8

	for i := 0; i < bits; i += 5 {
		var g byte

		for j := 0; j < 5; j++ {
			g <<= 1

			if k := i + j; k < bits && data[k/8]>>(7-k%8)&1 == 1 {
				g |= 1
			}
		}

		w.groups = append(w.groups, g)
	}
}

// WriteRaw writes 5-bit groups as is.
func (w *Writer) WriteRaw(groups []byte) (err error) {
	for i, g := range groups {
		if g > 31 {
			return Error.New("group out of range at %d: %d", i, g)
		}
	}

	w.groups = append(w.groups, groups...)

	return nil
}

// WriteTaggedField writes the tag, length and data of f. The declared length
// must match the data.
func (w *Writer) WriteTaggedField(f TaggedField) (err error) {
	if f.Tag < 0 || f.Tag > 31 {
		return Error.New("tag out of range: %d", f.Tag)
	}

	if f.Length != len(f.Data) {
		return Error.New("length mismatch: declared=%d data=%d", f.Length, len(f.Data))
	}

	if f.Length > 1023 {
		return Error.New("field too long: %d", f.Length)
	}

	for i, g := range f.Data {
		if g > 31 {
			return Error.New("group out of range at %d: %d", i, g)
		}
	}

	w.groups = append(w.groups, byte(f.Tag), byte(f.Length>>5), byte(f.Length&31))
	w.groups = append(w.groups, f.Data...)

	return nil
}
