// Package disk implements the machine's block device: file-backed disks with a block count header
// and a read-only first block.
package disk

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cellmach/cellmach/internal/log"
)

// Sentinel errors returned by block operations. These are guest-visible: callers report them in
// REG_ERROR rather than treating them as emulator-fatal.
var (
	ErrNotFound = errors.New("disk not found")
	ErrCorrupt  = errors.New("corrupt disk header")
	ErrBounds   = errors.New("block out of range")
	ErrReadOnly = errors.New("Block 1 is read-only")
)

// HeaderBlock is the 1-indexed block number holding the block count. It is read-only.
const HeaderBlock = 1

// Manager resolves disk names to files under a single directory (SYSTEM_HW_DIR) and performs
// block-level reads and writes against them.
type Manager struct {
	dir string
	log *log.Logger
}

// NewManager creates a block device manager rooted at dir.
func NewManager(dir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Manager{dir: dir, log: logger}
}

// path resolves a disk name to its backing file. The name is an opaque filename component; it is
// cleaned to prevent escaping the hardware directory.
func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, filepath.Base(name))
}

// Create makes a new disk file with the given number of blocks (including the header block).
func Create(dir, name string, blocks int) error {
	path := filepath.Join(dir, filepath.Base(name))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("disk: create: %w", err)
	}
	defer file.Close()

	out := bufio.NewWriter(file)
	fmt.Fprintln(out, blocks)

	for b := 2; b <= blocks; b++ {
		fmt.Fprintln(out)
	}

	return out.Flush()
}

// readAll loads every line of a disk file: line 1 is the block count, the rest are block contents.
func (m *Manager) readAll(name string) ([]string, error) {
	path := m.path(name)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return nil, fmt.Errorf("disk: %w", err)
	}
	defer file.Close()

	var lines []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("disk: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrCorrupt, name)
	}

	count, err := strconv.Atoi(lines[0])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: %s: bad block count %q", ErrCorrupt, name, lines[0])
	}

	return lines, nil
}

// ReadBlock returns the contents of block on disk name.
func (m *Manager) ReadBlock(name string, block int) (string, error) {
	lines, err := m.readAll(name)
	if err != nil {
		return "", err
	}

	count, _ := strconv.Atoi(lines[0])

	if block < 2 || block > count {
		return "", fmt.Errorf("%w: %s: block %d (of %d)", ErrBounds, name, block, count)
	}

	if block > len(lines) {
		return "", nil
	}

	return lines[block-1], nil
}

// WriteBlock replaces the contents of block on disk name, preserving every other block. Block 1 is
// never writable. The write is performed via a temporary file renamed over the original, so a
// concurrent reader never observes a partially written disk.
func (m *Manager) WriteBlock(name string, block int, value string) error {
	if block == HeaderBlock {
		return fmt.Errorf("%w", ErrReadOnly)
	}

	lines, err := m.readAll(name)
	if err != nil {
		return err
	}

	count, _ := strconv.Atoi(lines[0])

	if block < 2 || block > count {
		return fmt.Errorf("%w: %s: block %d (of %d)", ErrBounds, name, block, count)
	}

	for len(lines) < count {
		lines = append(lines, "")
	}

	lines[block-1] = value

	return m.writeAll(name, lines)
}

func (m *Manager) writeAll(name string, lines []string) error {
	path := m.path(name)

	tmp, err := os.CreateTemp(m.dir, ".disk-*.tmp")
	if err != nil {
		return fmt.Errorf("disk: write: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		_ = os.Remove(tmpPath) // no-op once renamed; cleans up on every error exit
	}()

	out := bufio.NewWriter(tmp)

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			tmp.Close()
			return fmt.Errorf("disk: write: %w", err)
		}
	}

	if err := out.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("disk: write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("disk: write: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("disk: write: %w", err)
	}

	m.log.Debug("disk: wrote block", "disk", name, "blocks", len(lines))

	return nil
}
