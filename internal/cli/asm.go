package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellmach/cellmach/internal/asm"
	"github.com/cellmach/cellmach/internal/log"
	"github.com/cellmach/cellmach/internal/reg"
)

// newAsmCommand builds "cellmach asm <program>": resolve labels and variables without executing
// the program, optionally printing an address-annotated listing.
func newAsmCommand(cfg Config, logger *log.Logger) *cobra.Command {
	var (
		listing bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "asm <program>",
		Short: "Assemble a guest program without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return assembleProgram(cmd, cfg, logger, args[0], listing, outPath)
		},
	}

	cmd.Flags().BoolVarP(&listing, "listing", "l", false, "print an address-annotated listing instead of resolved source")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write resolved source to this file instead of stdout")

	return cmd
}

func assembleProgram(cmd *cobra.Command, cfg Config, logger *log.Logger, path string, listing bool, outPath string) error {
	regs := reg.New(cfg.RAMSize)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cli: asm: %w", err)
	}
	defer file.Close()

	assembler := asm.New(regs, logger)
	if err := assembler.Parse(file); err != nil {
		return fmt.Errorf("cli: asm: %w", err)
	}

	lines, err := assembler.Resolve()
	if err != nil {
		return fmt.Errorf("cli: asm: %w", err)
	}

	out := cmd.OutOrStdout()

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("cli: asm: %w", err)
		}
		defer f.Close()

		out = f
	}

	for i, line := range lines {
		if listing {
			fmt.Fprintf(out, "%5d  %s\n", i+1, line)
			continue
		}

		fmt.Fprintln(out, line)
	}

	return nil
}
