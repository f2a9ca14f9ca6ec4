// Package cmd provides the command-line interface of pepc.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pepc",
		Short: "Priority encoder with parity checker.",
		Long: `pepc evaluates the arbitration logic of the priority encoder ` +
			`with parity checker and runs stimulus scripts against a ` +
			`cycle-accurate model of the core.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return loadDotEnv(envFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("env-file", ".env", "file to load environment variables from")
	flags.String("overflow", defaultOverflow,
		"how channel 8 is reported: wrap or saturate [$"+envOverflow+"]")

	rootCmd.AddCommand(newEvalCmd(), newRunCmd())

	return rootCmd
}

// Execute runs the command line. It exits with status 1 if the command fails.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
