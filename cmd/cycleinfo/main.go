// Command cycleinfo runs Ehlers cycle analysis over CSV bar files.
//
// Usage:
//
//	cycleinfo [global flags] <command> [flags]
//
// Commands:
//
//	run       stream bars through a pipeline and write every column as CSV
//	scan      print the FFT periodogram of a whole bar file
//	response  tabulate the frequency response of a filter in bar periods
//	list      list estimators, indicators, tapers and filters
//
// Examples:
//
//	cycleinfo run --bars spy.csv --estimator dft --indicator rsi
//	cycleinfo run --bars spy.csv --config pipeline.yaml
//	cycleinfo scan --bars spy.csv --min 8 --max 60
//	cycleinfo response --filter roofing --length 48 --lower 10
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cycle/internal/logging"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "cycleinfo",
		Usage: "dominant cycle analysis for bar series",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "human readable console logs",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			scanCommand(),
			responseCommand(),
			listCommand(),
		},
	}
}

func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	return logging.New(cmd.String("log-level"), cmd.Bool("dev"))
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
