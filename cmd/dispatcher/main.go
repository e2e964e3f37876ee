// Command dispatcher runs the host dispatcher simulation against an
// input file of process descriptors.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hostd/internal/config"
	"hostd/internal/dispatcher"
	"hostd/internal/logging"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "dispatcher <input-file>",
		Short: "Run the host dispatcher over a process descriptor file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetVerbose(verbose)
			log := logging.Default()

			cfg := config.Default()
			d, err := dispatcher.NewFromFile(cfg, log, args[0], dispatcher.WithVerbose(verbose))
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d.Run(ctx)
			return nil
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level and print memory/resource dumps each tick")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
