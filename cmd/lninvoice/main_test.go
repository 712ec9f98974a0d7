package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"
)

const (
	bolt11Sample = "lnbc1pvjluezsp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygspp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdpl2pkx2ctnv5sxxmmwwd5kgetjypeh2ursdae8g6twvus8g6rfwvs8qun0dfjkxaq9qrsgq357wnc5r2ueh7ck6q93dj32dlqnls087fxdwk8qakdyafkq3yap9us6v52vjjsrvywa6rt52cm9r9zqt8r2t7mlcwspyetp5h2tztugp9lfyql"

	sampleWithUnknownTags = "lnbc25m1pvjluezpp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdq5vdhkven9v5sxyetpdeessp5zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zyg3zygs9q5sqqqqqqqqqqqqqqqqsgq2qrqqqfppnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqppnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqpp4qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqhpnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqhp4qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqspnqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqsp4qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqnp5qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqnpkqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqz599y53s3ujmcfjp5xrdap68qxymkqphwsexhmhr8wdz5usdzkzrse33chw6dlp3jhuhge9ley7j2ayx36kawe7kmgg8sv5ugdyusdcqzn8z9x"

	paymentHash = "0001020304050607080900010203040506070809000102030405060708090102"
	payee       = "03e7156ae33b0a208d0744199163177e909e80176e55d97a2f221ede0f934dd9ad"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"LNINVOICE_STRICT", "LNINVOICE_JSON", "LNINVOICE_LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{LogLevel: "warn"}, cfg)

	t.Setenv("LNINVOICE_STRICT", "true")
	t.Setenv("LNINVOICE_LOG_LEVEL", "debug")

	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{Strict: true, LogLevel: "debug"}, cfg)

	t.Setenv("LNINVOICE_LOG_LEVEL", "loud")

	_, err = LoadConfig()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("LNINVOICE_JSON", "maybe")

	_, err = LoadConfig()
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	type TC struct {
		Name   string
		Env    map[string]string
		Args   []string
		Stdin  string
		Code   int
		Stdout []string
		Stderr []string
		Mark   error
	}

	tcs := []TC{}

	tcs = append(tcs, TC{
		Name:   "decode argument",
		Args:   []string{"decode", "lightning:" + bolt11Sample},
		Stdout: []string{"Invoice 1", "Network", paymentHash, payee, "Please consider supporting this project"},
	})

	tcs = append(tcs, TC{
		Name:   "decode stdin",
		Args:   []string{"decode"},
		Stdin:  bolt11Sample + "\n" + sampleWithUnknownTags + "\n",
		Stdout: []string{"Invoice 1", "Invoice 2", "0.025 BTC"},
	})

	tcs = append(tcs, TC{
		Name:   "strict flag",
		Args:   []string{"decode", "--strict", bolt11Sample, sampleWithUnknownTags},
		Code:   1,
		Stdout: []string{"Invoice 1"},
		Stderr: []string{"invoice 2", "Tagged field has unknown tag(s)"},
	})

	tcs = append(tcs, TC{
		Name:   "strict environment",
		Env:    map[string]string{"LNINVOICE_STRICT": "true"},
		Args:   []string{"decode", sampleWithUnknownTags},
		Code:   1,
		Stderr: []string{"invoice 1"},
	})

	tcs = append(tcs, TC{
		Name:   "invalid invoice",
		Args:   []string{"decode", "lnbc1qqqqqq", bolt11Sample},
		Code:   1,
		Stdout: []string{"Invoice 2", payee},
		Stderr: []string{"invoice 1", "Failed to bech32 decode"},
	})

	tcs = append(tcs, TC{
		Name:   "debug logging",
		Args:   []string{"--log-level", "debug", "decode", bolt11Sample},
		Stdout: []string{"Invoice 1"},
		Stderr: []string{"recovered payee", payee},
	})

	tcs = append(tcs, TC{
		Name:   "bad log level flag",
		Args:   []string{"--log-level", "loud", "decode", bolt11Sample},
		Code:   1,
		Stderr: []string{"loud"},
	})

	tcs = append(tcs, TC{
		Name:   "bad environment",
		Env:    map[string]string{"LNINVOICE_LOG_LEVEL": "loud"},
		Args:   []string{"decode", bolt11Sample},
		Code:   2,
		Stderr: []string{"invalid environment"},
	})

	tcs = append(tcs, TC{
		Name:   "bech32",
		Args:   []string{"bech32", bolt11Sample},
		Stdout: []string{"bech32", "lnbc"},
	})

	tcs = append(tcs, TC{
		Name:   "bech32 checksum",
		Args:   []string{"bech32", bolt11Sample[:len(bolt11Sample)-1] + "q"},
		Code:   1,
		Stderr: []string{"invalid checksum"},
	})

	tcs = append(tcs, TC{
		Name:   "bech32 arguments",
		Args:   []string{"bech32"},
		Code:   1,
		Stderr: []string{"expected exactly one argument"},
	})

	for _, tc := range tcs {
		tc := tc
		tc.Mark = oops.New("unexpected")

		t.Run(tc.Name, func(t *testing.T) {
			clearEnv(t)

			for k, v := range tc.Env {
				t.Setenv(k, v)
			}

			var stdout, stderr bytes.Buffer

			args := append([]string{"lninvoice"}, tc.Args...)
			code := run(args, strings.NewReader(tc.Stdin), &stdout, &stderr)
			require.Equal(t, tc.Code, code, "%+v\nstdout:\n%s\nstderr:\n%s", tc.Mark, stdout.String(), stderr.String())

			for _, s := range tc.Stdout {
				require.Contains(t, stdout.String(), s, tc.Mark)
			}

			for _, s := range tc.Stderr {
				require.Contains(t, stderr.String(), s, tc.Mark)
			}
		})
	}
}

func TestRunJSON(t *testing.T) {
	clearEnv(t)
	t.Setenv("LNINVOICE_JSON", "true")

	var stdout, stderr bytes.Buffer

	code := run([]string{"lninvoice", "decode", bolt11Sample}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var v struct {
		Network     string   `json:"network"`
		PaymentHash string   `json:"payment_hash"`
		Description *string  `json:"description"`
		Payee       string   `json:"payee"`
		Expiry      int64    `json:"expiry"`
		Features    []int    `json:"features"`
		AmountBTC   string   `json:"amount_btc"`
		Warnings    []string `json:"warnings"`
	}

	require.NoError(t, json.Unmarshal(stdout.Bytes(), &v))
	require.Equal(t, "bc", v.Network)
	require.Equal(t, paymentHash, v.PaymentHash)
	require.NotNil(t, v.Description)
	require.Equal(t, "Please consider supporting this project", *v.Description)
	require.Equal(t, payee, v.Payee)
	require.Equal(t, int64(3600), v.Expiry)
	require.Equal(t, []int{8, 14}, v.Features)
	require.Empty(t, v.AmountBTC)
	require.Empty(t, v.Warnings)

	stdout.Reset()

	code = run([]string{"lninvoice", "decode", "--json=false", bolt11Sample}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "Invoice 1")
}
