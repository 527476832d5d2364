package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-cycle/dsp/adaptive"
	"github.com/cwbudde/algo-cycle/dsp/cycle"
	"github.com/cwbudde/algo-cycle/dsp/window"
	"github.com/cwbudde/algo-cycle/series"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "list the names accepted by the other commands",
		Action: listAction,
	}
}

func listAction(_ context.Context, cmd *cli.Command) error {
	kinds := make([]string, 0, len(cycle.Kinds()))
	for _, k := range cycle.Kinds() {
		kinds = append(kinds, k.String())
	}

	tapers := []string{}
	for _, t := range window.Types() {
		tapers = append(tapers, fmt.Sprintf("%s (ENBW %.2f)", t, window.Info(t).ENBW))
	}

	prices := []string{}
	for f := series.Close; f <= series.Weighted; f++ {
		prices = append(prices, f.String())
	}

	w := cmd.Root().Writer
	_, err := fmt.Fprintf(w, "estimators: %s\nindicators: %s\ntapers:     %s\nfilters:    %s\nprices:     %s\n",
		strings.Join(kinds, ", "),
		strings.Join(adaptive.PresetNames(), ", "),
		strings.Join(tapers, ", "),
		strings.Join(filterNames(), ", "),
		strings.Join(prices, ", "),
	)
	return err
}
