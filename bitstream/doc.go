// Package bitstream reads and writes values packed into 5-bit groups.
//
// Bech32 data is a sequence of 5-bit groups, one per byte with the upper
// three bits clear. Values that span several groups are laid out big endian:
//
//	| group 0   | group 1   | group 2   |
//	|-----------|-----------|-----------|
//	| 4 3 2 1 0 | 4 3 2 1 0 | 4 3 2 1 0 |
//	|-----------|-----------|-----------|
//	| bit 14 ...                  bit 0 |
//
// Byte strings are the concatenation of the group bits regrouped into 8 bits,
// with any trailing partial byte padded with zeros at the end:
//
//	groups: 00000 11111 01
//	bytes:  00000111 11010000
//
// Tagged Fields
//
// A tagged field is a 1 group tag, a 2 group data length (in groups, so at
// most 1023) and the data groups:
//
//	| tag | length  | data ...         |
//	|-----|---------|------------------|
//	|  1  |    2    | length groups    |
//
// Readers are single use and never rewind. Fields that run past the end of
// the data fail with ErrTruncated.
package bitstream
