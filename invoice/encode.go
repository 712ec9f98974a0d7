package invoice

import (
	"encoding/binary"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/calebcase/lninvoice/amount"
	"github.com/calebcase/lninvoice/bech32"
	"github.com/calebcase/lninvoice/bitstream"
)

// Draft is an unsigned invoice.
type Draft struct {
	Network   Network
	Amount    *amount.Amount
	Timestamp time.Time
	Fields    []bitstream.TaggedField
}

// letters orders the multipliers from the largest unit down.
var letters = []string{"", "m", "u", "n", "p"}

// hrp returns the human readable part for the network and amount, using the
// largest multiplier that represents the amount exactly.
func (d Draft) hrp() (_ string, err error) {
	if d.Network.Params() == nil {
		return "", Error.New("unknown network: %s", d.Network)
	}

	hrp := "ln" + d.Network.String()
	if d.Amount == nil {
		return hrp, nil
	}

	if d.Amount.Cmp(amount.FromSatoshi(0)) <= 0 {
		return "", Error.New("amount must be positive: %s", d.Amount)
	}

	if d.Amount.PicoRemainder()%amount.PicoPerMilliSat != 0 {
		return "", Error.New("amount is not a whole number of millisatoshi: %s", d.Amount)
	}

	btc := d.Amount.Bitcoin()
	for _, l := range letters {
		v := btc.Shift(-multipliers[l])
		if v.IsInteger() {
			return hrp + v.String() + l, nil
		}
	}

	return "", Error.New("amount cannot be encoded: %s", d.Amount)
}

// Sign encodes and signs the invoice. The fields are written in order and
// must include a payment hash.
func (d Draft) Sign(key *btcec.PrivateKey) (_ string, err error) {
	defer Error.WrapP(&err)

	if _, ok := field(d.Fields, TagPaymentHash, hashGroups); !ok {
		return "", Error.New("missing payment hash")
	}

	hrp, err := d.hrp()
	if err != nil {
		return "", err
	}

	ts := d.Timestamp.Unix()
	if ts < 0 {
		return "", Error.New("timestamp before epoch: %s", d.Timestamp)
	}

	w := bitstream.NewWriter()

	err = w.WriteUint(uint64(ts), 7)
	if err != nil {
		return "", err
	}

	for _, f := range d.Fields {
		err = w.WriteTaggedField(f)
		if err != nil {
			return "", err
		}
	}

	body := w.Bytes()

	packed, err := bitstream.NewReader(body).ReadBytes(len(body) * 5)
	if err != nil {
		return "", err
	}

	sig, err := sign(key, chainhash.HashB(append([]byte(hrp), packed...)))
	if err != nil {
		return "", err
	}

	w.WriteBytes(sig[:])

	return bech32.Encode(bech32.Bech32, hrp, w.Bytes()), nil
}

func bytesField(t Tag, data []byte) bitstream.TaggedField {
	return RawField(t.Value, data)
}

// uintField holds v in the fewest groups. Values wider than 60 bits cannot
// be read back and are rejected.
func uintField(t Tag, v uint64) (_ bitstream.TaggedField, err error) {
	w := bitstream.NewWriter()

	err = w.WriteUint(v, bitstream.MinGroups(v))
	if err != nil {
		return bitstream.TaggedField{}, Error.Wrap(err)
	}

	return bitstream.TaggedField{
		Tag:    t.Value,
		Length: w.Len(),
		Data:   w.Bytes(),
	}, nil
}

// RawField returns a field with the given tag holding data.
func RawField(tag int, data []byte) bitstream.TaggedField {
	w := bitstream.NewWriter()
	w.WriteBytes(data)

	return bitstream.TaggedField{
		Tag:    tag,
		Length: w.Len(),
		Data:   w.Bytes(),
	}
}

// PaymentHashField returns a payment hash field.
func PaymentHashField(hash [32]byte) bitstream.TaggedField {
	return bytesField(TagPaymentHash, hash[:])
}

// PaymentSecretField returns a payment secret field.
func PaymentSecretField(secret [32]byte) bitstream.TaggedField {
	return bytesField(TagPaymentSecret, secret[:])
}

// DescriptionField returns a description field. Descriptions longer than 639
// bytes do not fit a field.
func DescriptionField(description string) bitstream.TaggedField {
	return bytesField(TagDescription, []byte(description))
}

// DescriptionHashField returns a description hash field.
func DescriptionHashField(hash [32]byte) bitstream.TaggedField {
	return bytesField(TagDescriptionHash, hash[:])
}

// MetadataField returns a payment metadata field.
func MetadataField(metadata []byte) bitstream.TaggedField {
	return bytesField(TagMetadata, metadata)
}

// ExpiryField returns an expiry field in whole seconds.
func ExpiryField(expiry time.Duration) (bitstream.TaggedField, error) {
	if expiry < 0 {
		return bitstream.TaggedField{}, Error.New("negative expiry: %s", expiry)
	}

	return uintField(TagExpiry, uint64(expiry/time.Second))
}

// MinFinalCLTVExpiryDeltaField returns a min_final_cltv_expiry_delta field.
func MinFinalCLTVExpiryDeltaField(delta uint64) (bitstream.TaggedField, error) {
	return uintField(TagMinFinalCLTVExpiryDelta, delta)
}

// RouteHintField returns a route hint field for one private route.
func RouteHintField(route []HopHint) (_ bitstream.TaggedField, err error) {
	if len(route) == 0 {
		return bitstream.TaggedField{}, Error.New("empty route")
	}

	data := make([]byte, 0, len(route)*hopBytes)
	for i, hop := range route {
		if hop.NodeID == nil {
			return bitstream.TaggedField{}, Error.New("hop %d has no node id", i)
		}

		data = append(data, hop.NodeID.SerializeCompressed()...)
		data = binary.BigEndian.AppendUint64(data, hop.ChannelID)
		data = binary.BigEndian.AppendUint32(data, hop.FeeBaseMSat)
		data = binary.BigEndian.AppendUint32(data, hop.FeeProportionalMillionths)
		data = binary.BigEndian.AppendUint16(data, hop.CLTVExpiryDelta)
	}

	return bytesField(TagRouteHint, data), nil
}

// FallbackAddressField returns a fallback address field for a P2PKH, P2SH or
// segwit address.
func FallbackAddressField(addr btcutil.Address) (_ bitstream.TaggedField, err error) {
	var version byte

	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash:
		version = 17
	case *btcutil.AddressScriptHash:
		version = 18
	case *btcutil.AddressWitnessPubKeyHash:
		version = a.WitnessVersion()
	case *btcutil.AddressWitnessScriptHash:
		version = a.WitnessVersion()
	case *btcutil.AddressTaproot:
		version = a.WitnessVersion()
	default:
		return bitstream.TaggedField{}, Error.New("unsupported address type: %T", addr)
	}

	w := bitstream.NewWriter()

	err = w.WriteUint(uint64(version), 1)
	if err != nil {
		return bitstream.TaggedField{}, err
	}

	w.WriteBytes(addr.ScriptAddress())

	return bitstream.TaggedField{
		Tag:    TagFallbackAddress.Value,
		Length: w.Len(),
		Data:   w.Bytes(),
	}, nil
}

// FeaturesField returns a features field with the given bits set.
func FeaturesField(bits ...int) (_ bitstream.TaggedField, err error) {
	v := new(big.Int)
	for _, b := range bits {
		if b < 0 {
			return bitstream.TaggedField{}, Error.New("negative feature bit: %d", b)
		}

		v.SetBit(v, b, 1)
	}

	groups := make([]byte, (v.BitLen()+4)/5)
	for i := range groups {
		var g uint
		for j := 0; j < 5; j++ {
			g |= v.Bit((len(groups)-1-i)*5+j) << j
		}

		groups[i] = byte(g)
	}

	return bitstream.TaggedField{
		Tag:    TagFeatures.Value,
		Length: len(groups),
		Data:   groups,
	}, nil
}
