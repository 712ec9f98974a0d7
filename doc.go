// Package lninvoice decodes streams of BOLT 11 lightning invoices.
//
// The invoice format itself lives in the invoice package, built on the
// bech32, bitstream and amount packages. This package reads invoices one at a
// time from any io.Reader:
//
//	d := lninvoice.NewDecoder(os.Stdin, invoice.Strict())
//	for {
//		pr, err := d.Decode()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
package lninvoice
