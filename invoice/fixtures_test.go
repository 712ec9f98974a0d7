package invoice_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebcase/lninvoice/bech32"
	"github.com/calebcase/lninvoice/bitstream"
)

const (
	sample = "lnbc25m1pvjluezpp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdq5vdhkven9v5sxyetpdeessp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygs9q5sqqqqqqqqqqqqqqqpqsq67gye39hfg3zd8rgc80k32tvy9xk2xunwm5lzexnvpx6fd77en8qaq424dxgt56cag2dpt359k3ssyhetktkpqh24jqnjyw6uqd08sgptq44qu"

	sampleWithPaymentHash = "lnbc9678785340p1pwmna7lpp5gc3xfm08u9qy06djf8dfflhugl6p7lgza6dsjxq454gxhj9t7a0sd8dgfkx7cmtwd68yetpd5s9xar0wfjn5gpc8qhrsdfq24f5ggrxdaezqsnvda3kkum5wfjkzmfqf3jkgem9wgsyuctwdus9xgrcyqcjcgpzgfskx6eqf9hzqnteypzxz7fzypfhg6trddjhygrcyqezcgpzfysywmm5ypxxjemgw3hxjmn8yptk7untd9hxwg3q2d6xjcmtv4ezq7pqxgsxzmnyyqcjqmt0wfjjq6t5v4khxsp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygsxqyjw5qcqp2rzjq0gxwkzc8w6323m55m4jyxcjwmy7stt9hwkwe2qxmy8zpsgg7jcuwz87fcqqeuqqqyqqqqlgqqqqn3qq9q9qrsgqrvgkpnmps664wgkp43l22qsgdw4ve24aca4nymnxddlnp8vh9v2sdxlu5ywdxefsfvm0fq3sesf08uf6q9a2ke0hc9j6z6wlxg5z5kqpu2v9wz"

	pubkeyRecoveryTest = "lnbc69420n1psmnpx3pp5uaycaj6z4xta6f9235py6xzxekanr593hhycm4xz5uvfmdenps4qdpqwp6ky6m90ys8yetrdamx2uneyp6x2um5cqzpgxqrrsssp5feksfv22atsf9ej9z6h6q4hg6uk7zyt454g7hhjt5ej8t5kwqv6s9qyyssqy38g7quvc37egftsnw9urvztt7p5xsajhdrvxyseytv5feyw7fnkj599fr9k0tw3atql5p4g9esuv69qakj3q85r7mwx4crsuwjmahgpxqnhrw"

	signatureOverflowTest = "lnbc1u1psa8wkepp5ly0f09hm3757w7pww6s78nykge4qea4kjas6vjtfjuaaycucpyzqdqqcqzpgxqyz5vqsp5uxllhnws7kfr85exa7phjaadmgmtau8pqeffggqm6t46jxma987q9qyyssqhhfttgqemkd2q5xhgwd3gdcqzqsmh5mlclkl3gjfy7lgygf7f5746cfwplpvhpzucpeg4ptzfk9k94c6w8f4dagjkjhz03lklat542cpvm5ps5"

	sampleWithDescriptionHash = "lnbc20m1pvjluezsp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygspp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqhp58yjmdan79s6qqdhdzgynm4zwqd5d7xmw5fk98klysy043l2ahrqs9qrsgq7ea976txfraylvgzuxs8kgcw23ezlrszfnh8r6qtfpr6cxga50aj6txm9rxrydzd06dfeawfk6swupvz4erwnyutnjq7x39ymw6j38gp7ynn44"

	sampleWithDescriptionAndDescriptionHash = "lnbc20m1pvjluezpp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqsp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygsdq823jhxaqhp58yjmdan79s6qqdhdzgynm4zwqd5d7xmw5fk98klysy043l2ahrqs9qrsgqxqrrsscqpfr6twf5rlcx42v9x9pq3upsl0m24z2gtkwmkzcwehx2rcqrdgs5540lz8m0lhs3z7t8luva6c5hlg6l5jsw4x3lnwuauqvxzmmcqen3gpj7tnq2"

	sampleWithUnknownTags = "lnbc25m1pvjluezpp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdq5vdhkven9v5sxyetpdeessp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygs9q5sqqqqqqqqqqqqqqqqsgq2qrqqqfppnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqppnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqpp4qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqhpnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqhp4qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqspnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqsp4qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqnp5qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqnpkqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqz599y53s3ujmcfjp5xrdap68qxymkqphwsexhmhr8wdz5usdzkzrse33chw6dlp3jhuhge9ley7j2ayx36kawe7kmgg8sv5ugdyusdcqzn8z9x"

	bolt11Sample = "lnbc1pvjluezsp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygspp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdpl2pkx2ctnv5sxxmmwwd5kgetjypeh2ursdae8g6twvus8g6rfwvs8qun0dfjkxaq9qrsgq357wnc5r2ueh7ck6q93dj32dlqnls087fxdwk8qakdyafkq3yap9us6v52vjjsrvywa6rt52cm9r9zqt8r2t7mlcwspyetp5h2tztugp9lfyql"

	// tooShort has a valid checksum but fewer groups than a signature.
	tooShort = "lnbc1pvjluezpp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdpl2pkx2ctnv5sxxmmwwd5kgetjypeh2ursdae8g6na6hlh"

	// testKey is the private key of the BOLT 11 examples.
	testKey = "e126f68f7eafcc8b74f54d269fe206be715000f94dac067d1c04a8ca3b2db734"

	testPayee = "03e7156ae33b0a208d0744199163177e909e80176e55d97a2f221ede0f934dd9ad"

	examplePaymentHash = "0001020304050607080900010203040506070809000102030405060708090102"
	exampleSecret      = "1111111111111111111111111111111111111111111111111111111111111111"
	exampleDescHash    = "3925b6f67e2c340036ed12093dd44e0368df1b6ea26c53dbe4811f58fd5db8c1"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func mustHash(t *testing.T, s string) (h [32]byte) {
	t.Helper()

	require.Equal(t, 32, copy(h[:], mustHex(t, s)))

	return h
}

// mustField returns a field constructor that fails the test on error.
func mustField(t *testing.T) func(bitstream.TaggedField, error) bitstream.TaggedField {
	return func(f bitstream.TaggedField, err error) bitstream.TaggedField {
		t.Helper()
		require.NoError(t, err)

		return f
	}
}

// reencode returns the data of the invoice s under a different human readable
// part. The signature is left as is.
func reencode(t *testing.T, s, hrp string, edit func(data []byte) []byte) string {
	t.Helper()

	p, err := bech32.Decode(s)
	require.NoError(t, err)

	data := p.Data()
	if edit != nil {
		data = edit(data)
	}

	return bech32.Encode(bech32.Bech32, hrp, data)
}

func hexOf(b []byte) string {
	return hex.EncodeToString(b)
}
