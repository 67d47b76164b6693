package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ashbyte/rematch"
)

// buildMatcher loads and assembles the program named by the --program flag
// and binds it to a fresh Matcher over --input.
func buildMatcher() (*rematch.Matcher, error) {
	f, err := os.Open(programFile)
	if err != nil {
		return nil, errors.Wrapf(err, "opening program file %s", programFile)
	}
	defer f.Close()

	prog, err := loadProgram(f)
	if err != nil {
		return nil, errors.Wrapf(err, "assembling %s", programFile)
	}

	pat, err := prog.Assemble()
	if err != nil {
		return nil, errors.Wrap(err, "assembling program")
	}

	m := rematch.NewMatcher(pat)
	m.ResetString(inputArg)
	return m, nil
}

// printGroups prints group 0 (the whole match) and every user capture
// group's boundaries and text.
func printGroups(m *rematch.Matcher) {
	for g := 0; g <= m.GroupCount(); g++ {
		start, errS := m.Start(g)
		end, errE := m.End(g)
		if errS != nil || errE != nil {
			fmt.Printf("group %d: <no match>\n", g)
			continue
		}
		if start < 0 {
			fmt.Printf("group %d: <did not participate>\n", g)
			continue
		}
		text, _ := m.Group(g)
		fmt.Printf("group %d: [%d,%d) %q\n", g, start, end, text)
	}
}
