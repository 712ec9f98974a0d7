package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/calebcase/oops"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/calebcase/lninvoice"
	"github.com/calebcase/lninvoice/bech32"
	"github.com/calebcase/lninvoice/invoice"
)

var yellowBold = color.New(color.FgHiYellow, color.Bold)

func decodeCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decodes invoices from the arguments or stdin",
		ArgsUsage: "[invoice...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Value: cfg.Strict,
				Usage: "Reject invoices with unknown tagged fields",
			},
			&cli.BoolFlag{
				Name:  "json",
				Value: cfg.JSON,
				Usage: "Print JSON instead of a table",
			},
		},
		Action: decode,
	}
}

func decode(ctx *cli.Context) (err error) {
	log, err := newLogger(ctx.App.ErrWriter, ctx.String("log-level"))
	if err != nil {
		return err
	}

	opts := []invoice.Option{invoice.WithLogger(log)}
	if ctx.Bool("strict") {
		opts = append(opts, invoice.Strict())
	}

	var r io.Reader = ctx.App.Reader
	if ctx.Args().Present() {
		r = strings.NewReader(strings.Join(ctx.Args().Slice(), "\n"))
	}

	var merr *multierror.Error

	d := lninvoice.NewDecoder(r, opts...)
	for i := 1; ; i++ {
		pr, err := d.Decode()
		if err == io.EOF {
			break
		}

		var invalid *invoice.InvalidInvoiceError
		if errors.As(err, &invalid) {
			log.Warn().Int("index", i).Msg(invalid.Message)
			merr = multierror.Append(merr, fmt.Errorf("invoice %d: %w", i, err))

			continue
		}

		if err != nil {
			return oops.Trace(err)
		}

		v := newView(pr)

		if ctx.Bool("json") {
			err = printJSON(ctx.App.Writer, v)
		} else {
			err = printTable(ctx.App.Writer, i, v)
		}

		if err != nil {
			return err
		}
	}

	return merr.ErrorOrNil()
}

var bech32Command = &cli.Command{
	Name:      "bech32",
	Usage:     "Decodes a bech32 or bech32m string",
	ArgsUsage: "string",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return oops.New("expected exactly one argument")
		}

		p, err := bech32.Decode(ctx.Args().First())
		if err != nil {
			return err
		}

		tbl := table.New("Field", "Value").WithWriter(ctx.App.Writer)
		tbl.WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc())
		tbl.AddRow("Encoding", p.Encoding())
		tbl.AddRow("HRP", p.HRP())
		tbl.AddRow("Groups", p.Len())
		tbl.AddRow("Data", hex.EncodeToString(p.Data()))

		b, err := bech32.ConvertBits(p.Data(), 5, 8, false)
		if err == nil {
			tbl.AddRow("Bytes", hex.EncodeToString(b))
		}

		tbl.Print()

		return nil
	},
}

type fieldView struct {
	Tag    int    `json:"tag"`
	Name   string `json:"name,omitempty"`
	Length int    `json:"length"`
}

type hopView struct {
	NodeID                    string `json:"node_id"`
	ChannelID                 uint64 `json:"channel_id"`
	FeeBaseMSat               uint32 `json:"fee_base_msat"`
	FeeProportionalMillionths uint32 `json:"fee_proportional_millionths"`
	CLTVExpiryDelta           uint16 `json:"cltv_expiry_delta"`
}

type view struct {
	Network                 string      `json:"network"`
	Timestamp               time.Time   `json:"timestamp"`
	AmountBTC               string      `json:"amount_btc,omitempty"`
	AmountMSat              *int64      `json:"amount_msat,omitempty"`
	PaymentHash             string      `json:"payment_hash"`
	Description             *string     `json:"description,omitempty"`
	DescriptionHash         string      `json:"description_hash,omitempty"`
	PaymentSecret           string      `json:"payment_secret,omitempty"`
	Payee                   string      `json:"payee"`
	ExpirySeconds           int64       `json:"expiry"`
	ExpiresAt               time.Time   `json:"expires_at"`
	MinFinalCLTVExpiryDelta uint64      `json:"min_final_cltv_expiry_delta"`
	Features                []int       `json:"features"`
	RouteHints              [][]hopView `json:"route_hints,omitempty"`
	FallbackAddresses       []string    `json:"fallback_addresses,omitempty"`
	Fields                  []fieldView `json:"fields"`
	Warnings                []string    `json:"warnings,omitempty"`

	expiry time.Duration
}

func newView(pr *invoice.PaymentRequest) view {
	v := view{
		Network:                 pr.Network.String(),
		Timestamp:               pr.Timestamp,
		PaymentHash:             pr.PaymentHash,
		expiry:                  pr.Expiry(),
		ExpirySeconds:           int64(pr.Expiry() / time.Second),
		ExpiresAt:               pr.ExpiresAt(),
		MinFinalCLTVExpiryDelta: pr.MinFinalCLTVExpiryDelta(),
		Features:                pr.Features(),
		Fields:                  []fieldView{},
	}

	if pr.Amount != nil {
		v.AmountBTC = pr.Amount.Bitcoin().String()

		msat, err := pr.Amount.MilliSat()
		if err == nil {
			v.AmountMSat = &msat
		}
	}

	if d, ok := pr.Description(); ok {
		v.Description = &d
	}

	v.DescriptionHash, _ = pr.DescriptionHash()
	v.PaymentSecret, _ = pr.PaymentSecret()

	payee, err := pr.PayeeNodePublicKey()
	if err != nil {
		v.Warnings = append(v.Warnings, err.Error())
	}

	v.Payee = hex.EncodeToString(payee)

	routes, err := pr.RouteHints()
	if err != nil {
		v.Warnings = append(v.Warnings, err.Error())
	}

	for _, route := range routes {
		hops := []hopView{}
		for _, hop := range route {
			hops = append(hops, hopView{
				NodeID:                    hex.EncodeToString(hop.NodeID.SerializeCompressed()),
				ChannelID:                 hop.ChannelID,
				FeeBaseMSat:               hop.FeeBaseMSat,
				FeeProportionalMillionths: hop.FeeProportionalMillionths,
				CLTVExpiryDelta:           hop.CLTVExpiryDelta,
			})
		}

		v.RouteHints = append(v.RouteHints, hops)
	}

	addrs, err := pr.FallbackAddresses()
	if err != nil {
		v.Warnings = append(v.Warnings, err.Error())
	}

	for _, addr := range addrs {
		v.FallbackAddresses = append(v.FallbackAddresses, addr.EncodeAddress())
	}

	for _, f := range pr.TaggedFields {
		fv := fieldView{Tag: f.Tag, Length: f.Length}
		if t, ok := invoice.LookupTag(f.Tag); ok {
			fv.Name = t.Name
		}

		v.Fields = append(v.Fields, fv)
	}

	return v
}

func printJSON(w io.Writer, v view) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func printTable(w io.Writer, i int, v view) error {
	if _, err := yellowBold.Fprintf(w, "Invoice %d\n", i); err != nil {
		return err
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Field", "Value").WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	tbl.AddRow("Network", v.Network)
	tbl.AddRow("Timestamp", v.Timestamp.Format(time.RFC3339))

	if v.AmountBTC != "" {
		tbl.AddRow("Amount", v.AmountBTC+" BTC")
	}

	tbl.AddRow("Payment Hash", v.PaymentHash)

	if v.Description != nil {
		tbl.AddRow("Description", strconv.Quote(*v.Description))
	}

	if v.DescriptionHash != "" {
		tbl.AddRow("Description Hash", v.DescriptionHash)
	}

	if v.PaymentSecret != "" {
		tbl.AddRow("Payment Secret", v.PaymentSecret)
	}

	tbl.AddRow("Payee", v.Payee)
	tbl.AddRow("Expiry", v.expiry)
	tbl.AddRow("Min Final CLTV Delta", v.MinFinalCLTVExpiryDelta)
	tbl.AddRow("Features", fmt.Sprint(v.Features))

	for n, route := range v.RouteHints {
		for _, hop := range route {
			tbl.AddRow(fmt.Sprintf("Route %d", n+1), fmt.Sprintf("%s %d", hop.NodeID, hop.ChannelID))
		}
	}

	for _, addr := range v.FallbackAddresses {
		tbl.AddRow("Fallback", addr)
	}

	for _, warning := range v.Warnings {
		tbl.AddRow("Warning", warning)
	}

	tbl.Print()

	_, err := fmt.Fprintln(w)

	return err
}
