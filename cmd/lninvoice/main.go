// Command lninvoice decodes BOLT 11 lightning invoices.
//
// Invoices are taken from the arguments, or read from stdin separated by
// whitespace when there are none:
//
//	lninvoice decode lnbc1...
//	lninvoice decode --json < invoices.txt
//	lninvoice bech32 lnbc1...
//
// Defaults come from the environment: LNINVOICE_STRICT, LNINVOICE_JSON and
// LNINVOICE_LOG_LEVEL. Flags override them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Config holds the defaults read from the environment.
type Config struct {
	Strict   bool   `envconfig:"STRICT" default:"false"`
	JSON     bool   `envconfig:"JSON" default:"false"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

// LoadConfig reads the LNINVOICE_ environment variables.
func LoadConfig() (cfg Config, err error) {
	err = envconfig.Process("lninvoice", &cfg)
	if err != nil {
		return cfg, err
	}

	_, err = zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	return zerolog.New(w).Output(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(l).
		With().Timestamp().Logger(), nil
}

func newApp(cfg Config, stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "lninvoice",
		Usage:     "decode BOLT 11 lightning invoices",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: cfg.LogLevel,
				Usage: "zerolog level for diagnostics on stderr",
			},
		},
		Commands: []*cli.Command{
			decodeCommand(cfg),
			bech32Command,
		},
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "invalid environment:", err)
		return 2
	}

	err = newApp(cfg, stdin, stdout, stderr).Run(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
