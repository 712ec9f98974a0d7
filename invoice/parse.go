package invoice

import (
	"encoding/hex"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/calebcase/lninvoice/amount"
	"github.com/calebcase/lninvoice/bech32"
	"github.com/calebcase/lninvoice/bitstream"
)

// ErrDigitsOverflow is the cause of an amount too large to represent.
var ErrDigitsOverflow = errors.New("amount digits overflow")

type options struct {
	strict bool
	log    zerolog.Logger
}

// Option configures Parse.
type Option func(o *options)

// Strict rejects invoices with tagged fields that are not known.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger logs the parse stages at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

var hrpPattern = regexp.MustCompile(`^ln([a-z]+)(([0-9]*)([munp])?)?(.*)$`)

// multipliers maps the amount multiplier to its base 10 exponent in bitcoin.
var multipliers = map[string]int32{
	"":  0,
	"m": -3,
	"u": -6,
	"n": -9,
	"p": -12,
}

// knownTags holds the values of Tags.
var knownTags = func() map[int]bool {
	m := map[int]bool{}
	for _, t := range Tags {
		m[t.Value] = true
	}

	return m
}()

// Parse decodes an invoice. Every failure is an *InvalidInvoiceError.
func Parse(s string, opts ...Option) (_ *PaymentRequest, err error) {
	o := options{
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := bech32.Decode(s)
	if err != nil {
		return nil, invalid(err, "Failed to bech32 decode [invoice=%s]", s)
	}

	hrp := p.HRP()
	o.log.Debug().Str("hrp", hrp).Int("groups", p.Len()).Msg("decoded bech32")

	m := hrpPattern.FindStringSubmatch(hrp)
	if m == nil {
		return nil, invalid(nil, "Cannot parse invoice. Bad HRP. [hrp=%s]", hrp)
	}

	if suffix := m[5]; suffix != "" {
		return nil, invalid(nil, "Unexpected suffix in HRP. [hrp=%s][suffix=%s]", hrp, suffix)
	}

	network, err := ParseNetwork(m[1])
	if err != nil {
		return nil, invalid(err, "Invalid network. [invoice=%s]", s)
	}

	amt, err := parseAmount(hrp, m[3], m[4])
	if err != nil {
		return nil, err
	}

	data := p.Data()
	if len(data) < signatureGroups {
		return nil, invalid(nil, "Invoice too short [invoice=%s]", s)
	}

	body, sigGroups := data[:len(data)-signatureGroups], data[len(data)-signatureGroups:]

	r := bitstream.NewReader(body)

	timestamp, err := r.ReadTimestamp(7)
	if err != nil {
		return nil, invalid(err, "Cannot parse tagged fields from data. [invoice=%s][data=%s]", s, hex.EncodeToString(data))
	}

	fields, err := r.ReadTaggedFields()
	if err != nil {
		return nil, invalid(err, "Cannot parse tagged fields from data. [invoice=%s][data=%s]", s, hex.EncodeToString(data))
	}

	o.log.Debug().Time("timestamp", timestamp).Int("fields", len(fields)).Msg("read tagged fields")

	paymentHash, ok := hexField(fields, TagPaymentHash)
	if !ok {
		return nil, invalid(nil, "Invoice did not include a payment hash [invoice=%s]", s)
	}

	if o.strict {
		if unknown := unknownTags(fields); len(unknown) > 0 {
			return nil, invalid(nil, "Tagged field has unknown tag(s) [%s]", strings.Join(unknown, ","))
		}
	}

	pr := &PaymentRequest{
		Network:      network,
		HRP:          hrp,
		Timestamp:    timestamp,
		Amount:       amt,
		PaymentHash:  paymentHash,
		TaggedFields: fields,
	}

	packed, err := bitstream.NewReader(body).ReadBytes(len(body) * 5)
	if err != nil {
		return nil, invalid(err, "Cannot parse tagged fields from data. [invoice=%s][data=%s]", s, hex.EncodeToString(data))
	}

	pr.MessageHash = chainhash.HashH(append([]byte(hrp), packed...))

	sig, err := bitstream.NewReader(sigGroups).ReadBytes(signatureGroups * 5)
	if err != nil {
		return nil, invalid(err, "Invoice too short [invoice=%s]", s)
	}

	copy(pr.Signature[:], sig)

	key, err := RecoverPublicKey(pr.Signature, pr.MessageHash)
	if err != nil {
		return nil, invalid(err, "Cannot recover payee node public key [invoice=%s]", s)
	}

	o.log.Debug().
		Hex("payee", key.SerializeCompressed()).
		Hex("message_hash", pr.MessageHash[:]).
		Msg("recovered payee")

	return pr, nil
}

// MustParse is like Parse but panics with the *InvalidInvoiceError.
func MustParse(s string) *PaymentRequest {
	pr, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return pr
}

func parseAmount(hrp, digits, multiplier string) (*amount.Amount, error) {
	if digits == "" {
		return nil, nil
	}

	if _, err := strconv.ParseUint(digits, 10, 64); err != nil {
		return nil, invalid(ErrDigitsOverflow, "Invalid amount. [hrp=%s]", hrp)
	}

	v, err := decimal.NewFromString(digits)
	if err != nil {
		return nil, invalid(err, "Invalid amount. [hrp=%s]", hrp)
	}

	a, err := amount.FromBitcoin(v.Shift(multipliers[multiplier]))
	if err != nil {
		return nil, invalid(err, "Invalid amount. [hrp=%s]", hrp)
	}

	if a.PicoRemainder()%amount.PicoPerMilliSat != 0 {
		return nil, invalid(nil, "Invalid amount. Pico amounts must be a multiple of 10. [hrp=%s]", hrp)
	}

	return &a, nil
}

func unknownTags(fields []bitstream.TaggedField) []string {
	seen := map[int]bool{}
	values := []int{}

	for _, f := range fields {
		if knownTags[f.Tag] || seen[f.Tag] {
			continue
		}

		seen[f.Tag] = true
		values = append(values, f.Tag)
	}

	sort.Ints(values)

	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strconv.Itoa(v))
	}

	return out
}
