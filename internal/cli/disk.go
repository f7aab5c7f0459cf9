package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cellmach/cellmach/internal/disk"
	"github.com/cellmach/cellmach/internal/log"
)

// newDiskCommand builds "cellmach disk", the parent of the disk-management sub-commands.
func newDiskCommand(cfg Config, logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disk",
		Short: "Manage block-device disk files",
	}

	cmd.AddCommand(newDiskInitCommand(cfg, logger))

	return cmd
}

// newDiskInitCommand builds "cellmach disk init <name> <blocks>": create a new disk file with the
// given number of blocks, including the read-only header block.
func newDiskInitCommand(cfg Config, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init <name> <blocks>",
		Short: "Create a new disk file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := strconv.Atoi(args[1])
			if err != nil || blocks < 1 {
				return fmt.Errorf("cli: disk init: invalid block count %q", args[1])
			}

			if err := disk.Create(cfg.HWDir, args[0], blocks); err != nil {
				return fmt.Errorf("cli: disk init: %w", err)
			}

			logger.Debug("cli: disk created", "name", args[0], "blocks", blocks)

			return nil
		},
	}
}
