// Package cli assembles the command tree and ties together RAM, registers, the assembler, the ALU,
// and the driver loop behind a small set of cobra sub-commands.
package cli

import (
	"os"
	"strconv"
)

// Config holds every environment-derived setting the command tree needs, read once at startup and
// threaded through construction rather than consulted ambiently mid-run.
type Config struct {
	RAMSize int
	HWDir   string
	RAMFile string
}

const defaultRAMSize = 4096

// LoadConfig reads GLOBAL_RAM_SIZE, SYSTEM_HW_DIR, and GLOBAL_RAM_FILE from the environment,
// applying documented defaults where they are unset.
func LoadConfig() Config {
	cfg := Config{
		RAMSize: defaultRAMSize,
		HWDir:   ".",
		RAMFile: "ram.dump",
	}

	if v := os.Getenv("GLOBAL_RAM_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RAMSize = n
		}
	}

	if v := os.Getenv("SYSTEM_HW_DIR"); v != "" {
		cfg.HWDir = v
	}

	if v := os.Getenv("GLOBAL_RAM_FILE"); v != "" {
		cfg.RAMFile = v
	}

	return cfg
}
