package cli

import (
	"github.com/spf13/cobra"

	"github.com/cellmach/cellmach/internal/log"
)

// NewRootCommand builds the cellmach command tree: run, asm, and disk.
func NewRootCommand() *cobra.Command {
	cfg := LoadConfig()
	logger := log.DefaultLogger()
	log.SetDefault(logger)

	var verbose bool

	root := &cobra.Command{
		Use:           "cellmach",
		Short:         "A toy hardware emulator and micro-instruction interpreter",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.LogLevel.Set(log.Debug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newRunCommand(cfg, logger))
	root.AddCommand(newAsmCommand(cfg, logger))
	root.AddCommand(newDiskCommand(cfg, logger))

	return root
}
