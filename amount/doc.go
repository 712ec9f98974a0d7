// Package amount provides a quantity of bitcoin held as whole satoshi plus a
// sub-satoshi remainder in pico bitcoin.
//
// The units relate as follows:
//
//	| Unit      | Bitcoin | Per Satoshi |
//	|-----------|---------|-------------|
//	| bitcoin   | 1       | 10^-8       |
//	| satoshi   | 10^-8   | 1           |
//	| millisat  | 10^-11  | 1_000       |
//	| pico      | 10^-12  | 10_000      |
//	|-----------|---------|-------------|
//
// An amount is split so that the remainder is always in [0, 9_999]. Negative
// amounts floor the satoshi part, so -1 pico is -1 satoshi plus 9_999 pico.
//
// Conversions to integer units fail rather than wrap when the result does not
// fit in an int64. Conversions to millisat round toward zero.
package amount
