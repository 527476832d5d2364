package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/filter/ehlers"
	"github.com/cwbudde/algo-cycle/dsp/spectrum"
	"github.com/cwbudde/algo-cycle/dsp/window"
	"github.com/cwbudde/algo-cycle/series"
	timestats "github.com/cwbudde/algo-cycle/stats/time"
)

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "print the periodogram of a whole bar file",
		Flags: []cli.Flag{
			barsFlag,
			&cli.StringFlag{Name: "price", Usage: "price field", Value: "close"},
			&cli.FloatFlag{Name: "min", Usage: "shortest period in bars", Value: 10},
			&cli.FloatFlag{Name: "max", Usage: "longest period in bars", Value: 48},
			&cli.StringFlag{Name: "window", Usage: "taper (rectangular, hann, hamming, blackman, triangle, welch)", Value: "hann"},
			&cli.IntFlag{Name: "padding", Usage: "zero padding factor", Value: 4},
			&cli.BoolFlag{Name: "raw", Usage: "skip the roofing filter"},
		},
		Action: scanAction,
	}
}

func scanAction(_ context.Context, cmd *cli.Command) error {
	field, err := series.ParsePriceField(cmd.String("price"))
	if err != nil {
		return err
	}
	taper, err := window.ParseType(cmd.String("window"))
	if err != nil {
		return err
	}
	band := core.Band{Min: cmd.Float("min"), Max: cmd.Float("max")}
	if err := band.Validate(); err != nil {
		return err
	}

	bars, err := loadBars(cmd)
	if err != nil {
		return err
	}

	values := field.Extract(bars).Values()
	if !cmd.Bool("raw") {
		roof, err := ehlers.NewRoofing(band.Max, band.Min)
		if err != nil {
			return err
		}
		values = ehlers.Apply(roof, values)
	}

	pg, err := spectrum.Periodogram(values, band,
		spectrum.WithWindow(taper),
		spectrum.WithPadding(int(cmd.Int("padding"))),
	)
	if err != nil {
		return err
	}

	return printSpectrum(cmd, pg, timestats.Calculate(values))
}

func printSpectrum(cmd *cli.Command, pg spectrum.Spectrum, ts timestats.Stats) error {
	norm := pg.Normalized()
	db := pg.Decibels()

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Period\tPower\tNormalized\tdB\n")
	fmt.Fprintf(tw, "------\t-----\t----------\t--\n")
	for i, p := range pg.Periods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			decimal.NewFromFloat(p).String(),
			decimal.NewFromFloat(pg.Power[i]).StringFixed(4),
			decimal.NewFromFloat(norm[i]).StringFixed(3),
			decimal.NewFromFloat(db[i]).StringFixed(2),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	st := pg.Stats()
	_, err := fmt.Fprintf(cmd.Root().Writer, "\ndominant cycle: %s bars (centroid %s, bandwidth %s)\n",
		decimal.NewFromFloat(st.PeakPeriod).String(),
		decimal.NewFromFloat(st.Centroid).StringFixed(2),
		decimal.NewFromFloat(st.Bandwidth).StringFixed(2),
	)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "zero-crossing period: %s bars over %d bars\n",
		decimal.NewFromFloat(ts.CrossingPeriod()).StringFixed(2), ts.Length)
	return err
}
