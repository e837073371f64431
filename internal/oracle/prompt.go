package oracle

import (
	_ "embed"
	"fmt"
	"os"
)

// defaultInstruction is the built-in classification instruction. It
// defines the output contract the normalizer expects; callers may replace
// it wholesale with LoadInstruction, and the replacement text is opaque to
// this package.
//
//go:embed prompt.txt
var defaultInstruction string

// DefaultInstruction returns the built-in instruction template.
func DefaultInstruction() string {
	return defaultInstruction
}

// LoadInstruction reads an alternate instruction template from a file.
// The text is sent to the oracle verbatim.
func LoadInstruction(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read instruction file: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("instruction file %s is empty", path)
	}
	return string(data), nil
}
