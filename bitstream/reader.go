package bitstream

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/zeebo/errs"
)

// Error is the class of all bitstream errors.
var Error = errs.Class("bitstream")

// ErrTruncated is returned when a read needs more groups than remain.
var ErrTruncated = errors.New("truncated")

// TaggedField is a tag, the declared data length in groups and the raw 5-bit
// data groups.
type TaggedField struct {
	Tag    int
	Length int
	Data   []byte
}

// Reader reads values from 5-bit groups.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a reader over the 5-bit groups in data.
func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
	}
}

// Pos returns the number of groups consumed.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the number of groups remaining.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// take consumes n groups.
func (r *Reader) take(n int) (groups []byte, err error) {
	if n < 0 {
		return nil, Error.New("negative group count: %d", n)
	}

	if n > r.Len() {
		return nil, Error.Wrap(fmt.Errorf(
			"%w: want %d groups at %d, %d remaining",
			ErrTruncated,
			n,
			r.pos,
			r.Len(),
		))
	}

	groups = r.data[r.pos : r.pos+n]
	r.pos += n

	return groups, nil
}

func (r *Reader) uint(groups, width int) (v uint64, err error) {
	if groups*5 > width {
		return 0, Error.New("%d groups do not fit in %d bits", groups, width)
	}

	data, err := r.take(groups)
	if err != nil {
		return 0, err
	}

	for _, g := range data {
		v = v<<5 | uint64(g&31)
	}

	return v, nil
}

// ReadUint32 reads an unsigned integer from n groups. At most 6 groups fit.
func (r *Reader) ReadUint32(n int) (uint32, error) {
	v, err := r.uint(n, 32)

	return uint32(v), err
}

// ReadUint64 reads an unsigned integer from n groups. At most 12 groups fit.
func (r *Reader) ReadUint64(n int) (uint64, error) {
	return r.uint(n, 64)
}

// ReadRaw reads n groups without regrouping them.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	data, err := r.take(n)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), data...), nil
}

// ReadBytes reads ceil(bits/5) groups and returns their first bits bits
// packed into bytes. A trailing partial byte is padded with zero bits.
func (r *Reader) ReadBytes(bits int) ([]byte, error) {
	if bits < 0 {
		return nil, Error.New("negative bit count: %d", bits)
	}

	groups, err := r.take((bits + 4) / 5)
	if err != nil {
		return nil, err
	}

	return pack(groups, bits), nil
}

// ReadText reads n groups as UTF-8 text. Only whole bytes are used; the
// trailing bits that do not fill a byte are discarded.
func (r *Reader) ReadText(n int) (string, error) {
	groups, err := r.take(n)
	if err != nil {
		return "", err
	}

	bits := n * 5

	return strings.ToValidUTF8(string(pack(groups, bits-bits%8)), "\uFFFD"), nil
}

// pack concatenates the low 5 bits of each group and returns the first bits
// bits as bytes.
func pack(groups []byte, bits int) []byte {
	out := make([]byte, (bits+7)/8)

	for i := 0; i < bits; i++ {
		if groups[i/5]>>(4-i%5)&1 == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}

	return out
}

// ReadTimestamp reads an unsigned integer from n groups as seconds since the
// epoch.
func (r *Reader) ReadTimestamp(n int) (time.Time, error) {
	v, err := r.ReadUint64(n)
	if err != nil {
		return time.Time{}, err
	}

	if v > 1<<63-1 {
		return time.Time{}, Error.New("timestamp out of range: %d", v)
	}

	return time.Unix(int64(v), 0).UTC(), nil
}

// ReadBitSet reads an unsigned integer of any width from n groups and returns
// the positions of the set bits in ascending order.
func (r *Reader) ReadBitSet(n int) ([]int, error) {
	data, err := r.take(n)
	if err != nil {
		return nil, err
	}

	v := new(big.Int)
	for _, g := range data {
		v.Lsh(v, 5)
		v.Or(v, big.NewInt(int64(g&31)))
	}

	set := []int{}
	for i := 0; i < v.BitLen(); i++ {
		if v.Bit(i) == 1 {
			set = append(set, i)
		}
	}

	return set, nil
}

// ReadTaggedField reads the next tag, length and data groups.
func (r *Reader) ReadTaggedField() (f TaggedField, err error) {
	tag, err := r.ReadUint32(1)
	if err != nil {
		return f, err
	}

	length, err := r.ReadUint32(2)
	if err != nil {
		return f, err
	}

	data, err := r.ReadRaw(int(length))
	if err != nil {
		return f, err
	}

	return TaggedField{
		Tag:    int(tag),
		Length: int(length),
		Data:   data,
	}, nil
}

// ReadTaggedFields reads tagged fields until no groups remain.
func (r *Reader) ReadTaggedFields() ([]TaggedField, error) {
	fields := []TaggedField{}

	s := r.Fields()
	for s.Next() {
		fields = append(fields, s.Field())
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return fields, nil
}

// Fields returns a scanner over the remaining tagged fields.
func (r *Reader) Fields() *FieldScanner {
	return &FieldScanner{
		r: r,
	}
}

// FieldScanner iterates over tagged fields:
//
//	s := r.Fields()
//	for s.Next() {
//		f := s.Field()
//	}
//	err := s.Err()
type FieldScanner struct {
	r     *Reader
	field TaggedField
	err   error
}

// Next advances to the next field. It returns false at the end of the data or
// on error.
func (s *FieldScanner) Next() (ok bool) {
	if s.err != nil || s.r.Len() == 0 {
		return false
	}

	s.field, s.err = s.r.ReadTaggedField()

	return s.err == nil
}

// Field returns the current field.
func (s *FieldScanner) Field() TaggedField {
	return s.field
}

// Err returns the error that stopped the scan, if any.
func (s *FieldScanner) Err() error {
	return s.err
}
