package main

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-cycle/dsp/filter/ehlers"
)

// responder is implemented by biquad.Coefficients and *biquad.Chain.
type responder interface {
	Response(period float64) complex128
	Gain(period float64) float64
	MagnitudeDB(period float64) float64
	Stable() bool
	PoleRadius() float64
}

type filterParams struct {
	length, lower, bandwidth float64
}

var filters = map[string]func(filterParams) (responder, error){
	"highpass": func(p filterParams) (responder, error) {
		f, err := ehlers.NewHighPass(p.length, ehlers.TwoPole)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
	"highpass1": func(p filterParams) (responder, error) {
		f, err := ehlers.NewHighPass(p.length, ehlers.OnePole)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
	"supersmoother": func(p filterParams) (responder, error) {
		f, err := ehlers.NewSuperSmoother(p.length, ehlers.SmootherDirect)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
	"supersmoother-avg": func(p filterParams) (responder, error) {
		f, err := ehlers.NewSuperSmoother(p.length, ehlers.SmootherAveraged)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
	"supersmoother3": func(p filterParams) (responder, error) {
		f, err := ehlers.NewSuperSmoother3(p.length)
		if err != nil {
			return nil, err
		}
		return f.Response(), nil
	},
	"roofing": func(p filterParams) (responder, error) {
		f, err := ehlers.NewRoofing(p.length, p.lower)
		if err != nil {
			return nil, err
		}
		return f.Response(), nil
	},
	"bandpass": func(p filterParams) (responder, error) {
		f, err := ehlers.NewBandPass(p.length, p.bandwidth)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
	"bandstop": func(p filterParams) (responder, error) {
		f, err := ehlers.NewBandStop(p.length, p.bandwidth)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
	"decycler": func(p filterParams) (responder, error) {
		f, err := ehlers.NewDecycler(p.length)
		if err != nil {
			return nil, err
		}
		return f.Coefficients(), nil
	},
}

func filterNames() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func responseCommand() *cli.Command {
	return &cli.Command{
		Name:  "response",
		Usage: "tabulate a filter's gain and phase against cycle period",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "filter name: " + strings.Join(filterNames(), ", "),
				Value:   "roofing",
			},
			&cli.FloatFlag{Name: "length", Usage: "cutoff or centre length in bars", Value: 48},
			&cli.FloatFlag{Name: "lower", Usage: "roofing smoother length in bars", Value: 10},
			&cli.FloatFlag{Name: "bandwidth", Usage: "band-pass/stop bandwidth", Value: 0.3},
			&cli.FloatFlag{Name: "from", Usage: "shortest period listed", Value: 4},
			&cli.FloatFlag{Name: "to", Usage: "longest period listed", Value: 100},
			&cli.IntFlag{Name: "steps", Usage: "number of rows, log spaced", Value: 16},
		},
		Action: responseAction,
	}
}

func responseAction(_ context.Context, cmd *cli.Command) error {
	name := strings.ToLower(cmd.String("filter"))
	build, ok := filters[name]
	if !ok {
		return fmt.Errorf("unknown filter %q (use `cycleinfo list`)", name)
	}

	r, err := build(filterParams{
		length:    cmd.Float("length"),
		lower:     cmd.Float("lower"),
		bandwidth: cmd.Float("bandwidth"),
	})
	if err != nil {
		return err
	}

	periods, err := logPeriods(cmd.Float("from"), cmd.Float("to"), int(cmd.Int("steps")))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Period\tGain\tGain [dB]\tPhase [deg]\n")
	fmt.Fprintf(tw, "------\t----\t---------\t-----------\n")
	for _, p := range periods {
		db := r.MagnitudeDB(p)
		dbText := "-inf"
		if !math.IsInf(db, -1) {
			dbText = decimal.NewFromFloat(db).StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			decimal.NewFromFloat(p).StringFixed(2),
			decimal.NewFromFloat(r.Gain(p)).StringFixed(4),
			dbText,
			decimal.NewFromFloat(cmplx.Phase(r.Response(p))*180/math.Pi).StringFixed(1),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "stable: %t, pole radius %s\n",
		r.Stable(), decimal.NewFromFloat(r.PoleRadius()).StringFixed(4))
	return err
}

// logPeriods returns n periods spaced evenly in log scale from lo to hi.
func logPeriods(lo, hi float64, n int) ([]float64, error) {
	if !(lo >= 2) || !(hi >= lo) || n < 1 {
		return nil, fmt.Errorf("invalid period range [%v, %v] with %d steps", lo, hi, n)
	}
	if n == 1 {
		return []float64{lo}, nil
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi
	return out, nil
}
