// Package bech32 provides the checksummed base 32 text envelope used by
// Lightning payment requests.
//
// A bech32 string is laid out as:
//
//	hrp 1 data checksum
//
// Where hrp is the human readable part (1 to 83 printable ASCII characters),
// 1 is the separator (the last 1 in the string), data is zero or more
// characters from the alphabet and checksum is six more characters from the
// same alphabet.
//
// Alphabet
//
// Each data character carries 5 bits:
//
//	|   | 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
//	|---|---|---|---|---|---|---|---|---|
//	| 0 | q | p | z | r | y | 9 | x | 8 |
//	| 8 | g | f | 2 | t | v | d | w | 0 |
//	|16 | s | 3 | j | n | 5 | 4 | k | h |
//	|24 | c | e | 6 | m | u | a | 7 | l |
//
// Payloads returned by Decode hold one 5-bit value per byte. Regrouping the
// values into 8-bit bytes is left to the caller (see the bitstream package
// and ConvertBits).
//
// Checksum
//
// The checksum is a BCH code over GF(32). The human readable part is
// expanded into the high 3 bits of every character, a zero, then the low 5
// bits of every character. The expansion, the data and the checksum reduce
// to a fixed residue which identifies the encoding:
//
//	| Encoding | Residue    |
//	|----------|------------|
//	| Bech32   | 0x00000001 |
//	| Bech32m  | 0x2bc830a3 |
//
// Strings must be entirely lowercase or entirely uppercase. Encoding always
// produces lowercase.
package bech32
