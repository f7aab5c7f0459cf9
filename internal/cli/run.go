package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cellmach/cellmach/internal/alu"
	"github.com/cellmach/cellmach/internal/asm"
	"github.com/cellmach/cellmach/internal/disk"
	"github.com/cellmach/cellmach/internal/driver"
	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/ram"
	"github.com/cellmach/cellmach/internal/reg"
	"github.com/cellmach/cellmach/internal/term"
)

// newRunCommand builds "cellmach run <program>": assemble and execute a guest program to
// completion.
func newRunCommand(cfg Config, logger *log.Logger) *cobra.Command {
	var (
		debug   bool
		ramDump string
	)

	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Assemble and run a guest program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, cfg, logger, args[0], debug, ramDump)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "j", false, "enable the instruction tracer")
	cmd.Flags().StringVarP(&ramDump, "ram-dump", "r", "", "dump RAM to this file on halt (default: GLOBAL_RAM_FILE)")
	cmd.Flags().Lookup("ram-dump").NoOptDefVal = cfg.RAMFile

	return cmd
}

func runProgram(cmd *cobra.Command, cfg Config, logger *log.Logger, path string, debug bool, ramDump string) error {
	r := ram.New(cfg.RAMSize)
	regs := reg.New(cfg.RAMSize)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cli: run: %w", err)
	}
	defer file.Close()

	assembler := asm.New(regs, logger)
	if err := assembler.Parse(file); err != nil {
		return fmt.Errorf("cli: run: %w", err)
	}

	if _, err := assembler.Load(r); err != nil {
		return fmt.Errorf("cli: run: %w", err)
	}

	disks := disk.NewManager(cfg.HWDir, logger)
	console := term.NewConsole(os.Stdin)
	unit := alu.New(regs, disks, cmd.OutOrStdout(), console, logger)

	d := driver.New(r, regs, unit, logger, cmd.ErrOrStderr())
	d.Trace = debug

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runErr := d.Run(ctx)

	if cmd.Flags().Changed("ram-dump") {
		dumpPath := ramDump
		if dumpPath == "" {
			dumpPath = cfg.RAMFile
		}

		if err := r.Dump(dumpPath); err != nil {
			logger.Error("cli: ram dump failed", "error", err)
		}
	}

	return runErr
}
