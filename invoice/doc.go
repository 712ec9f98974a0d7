// Package invoice parses and builds BOLT 11 lightning payment requests.
//
// An invoice is a Bech32 string. The human readable part carries the network
// and an optional amount:
//
//	ln <network> [<digits> [<multiplier>]]
//
// Where the multiplier is one of:
//
//	| Letter | Bitcoin |
//	|--------|---------|
//	| (none) | 1       |
//	| m      | 10^-3   |
//	| u      | 10^-6   |
//	| n      | 10^-9   |
//	| p      | 10^-12  |
//	|--------|---------|
//
// The data part is a 35 bit timestamp, a sequence of tagged fields and a 520
// bit signature:
//
//	| timestamp | tag | length | data ... | tag | length | data ... | signature |
//	| 7         | 1   | 2      | length   | 1   | 2      | length   | 104       |
//
// All sizes are in 5-bit groups. The signature is r and s followed by a
// recovery id. It signs the SHA-256 of the human readable part followed by the
// timestamp and tagged fields packed into bytes.
//
// Parse never returns a partial result. Derived values such as the
// description or expiry are read from the tagged fields on demand.
package invoice
