package invoice

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// signatureGroups is the size of the signature in 5-bit groups.
	signatureGroups = 104

	// compactCompressed is the header offset of a compact signature for a
	// compressed key.
	compactCompressed = 27 + 4
)

// RecoverPublicKey returns the key that produced sig over hash. The signature
// is r and s as 32 byte big-endian integers followed by a recovery id in
// [0, 3].
func RecoverPublicKey(sig [65]byte, hash [32]byte) (_ *btcec.PublicKey, err error) {
	defer Error.WrapP(&err)

	var r, s secp256k1.ModNScalar

	if r.SetByteSlice(sig[:32]) || r.IsZero() {
		return nil, Error.New("signature r out of range")
	}

	if s.SetByteSlice(sig[32:64]) || s.IsZero() {
		return nil, Error.New("signature s out of range")
	}

	recid := sig[64]
	if recid > 3 {
		return nil, Error.New("invalid recovery id: %d", recid)
	}

	compact := make([]byte, 65)
	compact[0] = compactCompressed + recid
	r.PutBytesUnchecked(compact[1:33])
	s.PutBytesUnchecked(compact[33:65])

	key, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return nil, err
	}

	return key, nil
}

// sign returns the signature of hash in the invoice layout: r, s and the
// recovery id.
func sign(key *btcec.PrivateKey, hash []byte) (sig [65]byte, err error) {
	compact, err := ecdsa.SignCompact(key, hash, true)
	if err != nil {
		return sig, Error.Wrap(err)
	}

	copy(sig[:64], compact[1:])
	sig[64] = compact[0] - compactCompressed

	return sig, nil
}
