package invoice

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/calebcase/lninvoice/amount"
	"github.com/calebcase/lninvoice/bitstream"
)

const (
	// DefaultExpiry applies when an invoice has no expiry field.
	DefaultExpiry = time.Hour

	// DefaultMinFinalCLTVExpiryDelta applies when an invoice has no
	// min_final_cltv_expiry_delta field.
	DefaultMinFinalCLTVExpiryDelta = 18

	hashGroups   = 52
	pubKeyGroups = 53
	hopBytes     = 33 + 8 + 4 + 4 + 2
)

// PaymentRequest is a parsed invoice.
type PaymentRequest struct {
	Network Network

	// HRP is the human readable part the signature commits to.
	HRP string

	Timestamp time.Time

	// Amount is nil when the invoice leaves the amount to the payer.
	Amount *amount.Amount

	// PaymentHash is the lowercase hex of the payment hash.
	PaymentHash string

	// TaggedFields are all fields in invoice order, unknown tags included.
	TaggedFields []bitstream.TaggedField

	Signature   [65]byte
	MessageHash [32]byte
}

// field returns the first field with the tag. A positive length also requires
// the field to have exactly that many groups; other fields of the tag are
// skipped.
func field(fields []bitstream.TaggedField, t Tag, length int) (bitstream.TaggedField, bool) {
	for _, f := range fields {
		if f.Tag != t.Value {
			continue
		}

		if length > 0 && f.Length != length {
			continue
		}

		return f, true
	}

	return bitstream.TaggedField{}, false
}

func hexField(fields []bitstream.TaggedField, t Tag) (string, bool) {
	f, ok := field(fields, t, hashGroups)
	if !ok {
		return "", false
	}

	b, err := bitstream.NewReader(f.Data).ReadBytes(256)
	if err != nil {
		return "", false
	}

	return hex.EncodeToString(b), true
}

// wholeBytes packs all groups of f into bytes, dropping a trailing partial
// byte.
func wholeBytes(f bitstream.TaggedField) []byte {
	bits := f.Length * 5

	b, err := bitstream.NewReader(f.Data).ReadBytes(bits - bits%8)
	if err != nil {
		return nil
	}

	return b
}

// Description returns the text of the description field.
func (pr *PaymentRequest) Description() (string, bool) {
	f, ok := field(pr.TaggedFields, TagDescription, 0)
	if !ok {
		return "", false
	}

	text, err := bitstream.NewReader(f.Data).ReadText(f.Length)
	if err != nil {
		return "", false
	}

	return text, true
}

// DescriptionHash returns the hex of the description hash field.
func (pr *PaymentRequest) DescriptionHash() (string, bool) {
	return hexField(pr.TaggedFields, TagDescriptionHash)
}

// PaymentSecret returns the hex of the payment secret field.
func (pr *PaymentRequest) PaymentSecret() (string, bool) {
	return hexField(pr.TaggedFields, TagPaymentSecret)
}

func (pr *PaymentRequest) uint(t Tag) (uint64, bool) {
	f, ok := field(pr.TaggedFields, t, 0)
	if !ok {
		return 0, false
	}

	v, err := bitstream.NewReader(f.Data).ReadUint64(f.Length)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Expiry returns how long after Timestamp the invoice is valid.
func (pr *PaymentRequest) Expiry() time.Duration {
	v, ok := pr.uint(TagExpiry)
	if !ok || v > uint64(1<<63-1)/uint64(time.Second) {
		return DefaultExpiry
	}

	return time.Duration(v) * time.Second
}

// ExpiresAt returns the time the invoice expires.
func (pr *PaymentRequest) ExpiresAt() time.Time {
	return pr.Timestamp.Add(pr.Expiry())
}

// MinFinalCLTVExpiryDelta returns the block delta for the final hop.
func (pr *PaymentRequest) MinFinalCLTVExpiryDelta() uint64 {
	v, ok := pr.uint(TagMinFinalCLTVExpiryDelta)
	if !ok {
		return DefaultMinFinalCLTVExpiryDelta
	}

	return v
}

// Features returns the set feature bits in ascending order.
func (pr *PaymentRequest) Features() []int {
	f, ok := field(pr.TaggedFields, TagFeatures, 0)
	if !ok {
		return []int{}
	}

	set, err := bitstream.NewReader(f.Data).ReadBitSet(f.Length)
	if err != nil {
		return []int{}
	}

	return set
}

// Metadata returns the payment metadata.
func (pr *PaymentRequest) Metadata() ([]byte, bool) {
	f, ok := field(pr.TaggedFields, TagMetadata, 0)
	if !ok {
		return nil, false
	}

	return wholeBytes(f), true
}

// PayeeNode returns the compressed key in the payee node field. Most invoices
// omit it; see PayeeNodePublicKey.
func (pr *PaymentRequest) PayeeNode() ([]byte, bool) {
	f, ok := field(pr.TaggedFields, TagPayeeNode, pubKeyGroups)
	if !ok {
		return nil, false
	}

	b, err := bitstream.NewReader(f.Data).ReadBytes(264)
	if err != nil {
		return nil, false
	}

	return b, true
}

// PayeeNodePublicKey returns the compressed key recovered from the signature.
func (pr *PaymentRequest) PayeeNodePublicKey() ([]byte, error) {
	key, err := RecoverPublicKey(pr.Signature, pr.MessageHash)
	if err != nil {
		return nil, err
	}

	return key.SerializeCompressed(), nil
}

// HopHint is one hop of a private route to the payee.
type HopHint struct {
	NodeID                    *btcec.PublicKey
	ChannelID                 uint64
	FeeBaseMSat               uint32
	FeeProportionalMillionths uint32
	CLTVExpiryDelta           uint16
}

// RouteHints returns the routes of all route hint fields.
func (pr *PaymentRequest) RouteHints() (routes [][]HopHint, err error) {
	defer Error.WrapP(&err)

	routes = [][]HopHint{}

	for _, f := range pr.TaggedFields {
		if f.Tag != TagRouteHint.Value {
			continue
		}

		b := wholeBytes(f)
		if len(b) == 0 || len(b)%hopBytes != 0 {
			return nil, Error.New("route hint of %d bytes is not a multiple of %d", len(b), hopBytes)
		}

		route := make([]HopHint, 0, len(b)/hopBytes)
		for ; len(b) > 0; b = b[hopBytes:] {
			key, err := btcec.ParsePubKey(b[:33])
			if err != nil {
				return nil, err
			}

			route = append(route, HopHint{
				NodeID:                    key,
				ChannelID:                 binary.BigEndian.Uint64(b[33:41]),
				FeeBaseMSat:               binary.BigEndian.Uint32(b[41:45]),
				FeeProportionalMillionths: binary.BigEndian.Uint32(b[45:49]),
				CLTVExpiryDelta:           binary.BigEndian.Uint16(b[49:51]),
			})
		}

		routes = append(routes, route)
	}

	return routes, nil
}

// FallbackAddresses returns the on-chain addresses of all fallback address
// fields. Fields with an unknown version are skipped.
func (pr *PaymentRequest) FallbackAddresses() (addrs []btcutil.Address, err error) {
	defer Error.WrapP(&err)

	params := pr.Network.Params()
	if params == nil {
		return nil, Error.New("unknown network: %s", pr.Network)
	}

	addrs = []btcutil.Address{}

	for _, f := range pr.TaggedFields {
		if f.Tag != TagFallbackAddress.Value || f.Length == 0 {
			continue
		}

		version := f.Data[0]
		program := wholeBytes(bitstream.TaggedField{
			Tag:    f.Tag,
			Length: f.Length - 1,
			Data:   f.Data[1:],
		})

		var addr btcutil.Address

		switch {
		case version == 17:
			addr, err = btcutil.NewAddressPubKeyHash(program, params)
		case version == 18:
			addr, err = btcutil.NewAddressScriptHashFromHash(program, params)
		case version == 0 && len(program) == 20:
			addr, err = btcutil.NewAddressWitnessPubKeyHash(program, params)
		case version == 0 && len(program) == 32:
			addr, err = btcutil.NewAddressWitnessScriptHash(program, params)
		case version == 1:
			addr, err = btcutil.NewAddressTaproot(program, params)
		default:
			continue
		}

		if err != nil {
			return nil, err
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}
