package main

import (
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-cycle/series"
)

var barsFlag = &cli.StringFlag{
	Name:     "bars",
	Aliases:  []string{"b"},
	Usage:    "CSV file with time,open,high,low,close,volume columns, `-` for stdin",
	Required: true,
}

func loadBars(cmd *cli.Command) ([]series.Bar, error) {
	path := cmd.String("bars")

	var (
		bars []series.Bar
		err  error
	)
	if path == "-" {
		bars, err = series.ReadBarsCSV(cmd.Root().Reader)
	} else {
		bars, err = series.LoadBarsCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, errors.New("no bars in input")
	}
	return bars, nil
}
