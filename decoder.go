package lninvoice

import (
	"bufio"
	"io"
	"strings"

	"github.com/calebcase/lninvoice/invoice"
)

// uriScheme prefixes invoices in payment links.
const uriScheme = "lightning:"

// Decoder reads whitespace separated invoices from a stream.
type Decoder struct {
	s    *bufio.Scanner
	opts []invoice.Option
}

// NewDecoder returns a decoder reading from r. The options apply to every
// invoice.
func NewDecoder(r io.Reader, opts ...invoice.Option) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	s.Split(bufio.ScanWords)

	return &Decoder{
		s:    s,
		opts: opts,
	}
}

// Decode returns the next invoice. It returns io.EOF when the stream is
// exhausted. An invalid invoice does not stop the decoder.
func (d *Decoder) Decode() (*invoice.PaymentRequest, error) {
	if !d.s.Scan() {
		if err := d.s.Err(); err != nil {
			return nil, err
		}

		return nil, io.EOF
	}

	return invoice.Parse(TrimScheme(d.s.Text()), d.opts...)
}

// TrimScheme removes a leading "lightning:" regardless of case.
func TrimScheme(s string) string {
	if len(s) >= len(uriScheme) && strings.EqualFold(s[:len(uriScheme)], uriScheme) {
		return s[len(uriScheme):]
	}

	return s
}
