package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a small line-oriented assembly listing and returns the
// resulting Program, ready for Assemble. It exists because the real pattern
// compiler is out of scope for this engine; this grammar is a readable
// stand-in for "supply a compiled program", used by both cmd/rematch and the
// VM-level conformance fixtures.
//
// Grammar, one directive per line, blank lines and "#" comments ignored:
//
//	CAPTURES <n>                  declare n user capture groups (must be first)
//	LABEL <name>                  define a jump target at the current position
//	CHAR <rune>                   ONECHAR
//	STRING <text>                 STRING + STRING_LEN
//	JMP <label>                   JMP
//	SAVE <label>                  STATE_SAVE
//	BACKTRACK | END | FAIL        terminal/ambient ops
//	STARTCAP <n> | ENDCAP <n>     START_CAPTURE / END_CAPTURE
//	CARET | DOLLAR | A | Z | G | X  zero-width anchors
//	WORDB | NWORDB                 \b / \B
//	DIGIT | NDIGIT                 \d / \D
//	ANY | ANYALL                   . / dot-all .
func Parse(r io.Reader) (*Program, error) {
	var (
		p       *Program
		scanner = bufio.NewScanner(r)
		lineNo  = 0
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		op := strings.ToUpper(fields[0])
		args := fields[1:]

		if p == nil {
			if op != "CAPTURES" {
				return nil, errors.Errorf("line %d: first directive must be CAPTURES, got %q", lineNo, op)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad CAPTURES operand", lineNo)
			}
			p = New(n, n)
			continue
		}

		if err := applyDirective(p, op, args); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading program")
	}
	if p == nil {
		return nil, errors.New("empty program: expected at least a CAPTURES directive")
	}
	return p, nil
}

func applyDirective(p *Program, op string, args []string) error {
	switch op {
	case "LABEL":
		p.Label(Label(args[0]))
	case "CHAR":
		r, err := parseRune(args[0])
		if err != nil {
			return err
		}
		p.Char(r)
	case "STRING":
		p.StringLit(strings.Join(args, " "))
	case "JMP":
		p.Jmp(Label(args[0]))
	case "SAVE":
		p.StateSave(Label(args[0]))
	case "BACKTRACK":
		p.Backtrack()
	case "END":
		p.End()
	case "FAIL":
		p.Fail()
	case "STARTCAP":
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		p.StartCapture(n)
	case "ENDCAP":
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		p.EndCapture(n)
	case "CARET":
		p.Caret()
	case "DOLLAR":
		p.Dollar()
	case "A":
		p.BackslashA()
	case "Z":
		p.BackslashZ()
	case "G":
		p.BackslashG()
	case "X":
		p.BackslashX()
	case "WORDB":
		p.BackslashB(false)
	case "NWORDB":
		p.BackslashB(true)
	case "DIGIT":
		p.BackslashD(false)
	case "NDIGIT":
		p.BackslashD(true)
	case "ANY":
		p.DotAny()
	case "ANYALL":
		p.DotAnyAll()
	default:
		return errors.Errorf("unrecognised directive %q", op)
	}
	return nil
}

func parseRune(tok string) (rune, error) {
	unquoted := strings.Trim(tok, "'")
	rs := []rune(unquoted)
	if len(rs) != 1 {
		return 0, errors.Errorf("CHAR operand %q is not a single rune", tok)
	}
	return rs[0], nil
}
