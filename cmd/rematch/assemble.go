package main

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ashbyte/rematch/internal/asm"
)

// loadProgram reads the mnemonic assembly listing named by --program. The
// grammar itself lives in internal/asm.Parse so the conformance fixtures
// under testdata/ can drive the same listings without this command.
func loadProgram(r io.Reader) (*asm.Program, error) {
	p, err := asm.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing program")
	}
	return p, nil
}
