// Package asm assembles symbolic bytecode instructions into a
// rematch.CompiledPattern. It stands in for the pattern compiler that
// translating regex syntax into bytecode would require — out of scope for
// rematch itself — so that tests, fixtures, and the CLI have a readable way
// to supply "compiled" programs without hand-packing instruction words.
package asm

import (
	"unicode/utf16"

	"github.com/pkg/errors"

	"github.com/ashbyte/rematch"
)

// Label names a jump target within an in-progress Program. Labels are
// resolved to instruction indices when Assemble runs.
type Label string

// Program is a sequence of symbolic instructions under construction. Build
// one with New, append to it with the op-emitting methods, and finish with
// Assemble.
type Program struct {
	numCaptureGroups int
	maxCaptureDigits int

	instrs []instr
	labels map[Label]int
	sets   []rematch.CharSet
	lit    []uint16
}

type instr struct {
	op    rematch.OpCode
	val   int
	label Label // set instead of val when this operand is a forward/back reference
}

// New starts a Program for a pattern with numCaptureGroups user capture
// groups. maxCaptureDigits bounds how many decimal digits
// Matcher.AppendReplacement will read for a $k backreference.
func New(numCaptureGroups, maxCaptureDigits int) *Program {
	return &Program{
		numCaptureGroups: numCaptureGroups,
		maxCaptureDigits: maxCaptureDigits,
		labels:           make(map[Label]int),
	}
}

// Label marks the current instruction index under name, for later use with
// Jmp or StateSave. A label may be defined at most once.
func (p *Program) Label(name Label) *Program {
	if _, exists := p.labels[name]; exists {
		panic("asm: label " + string(name) + " redefined")
	}
	p.labels[name] = len(p.instrs)
	return p
}

func (p *Program) emit(op rematch.OpCode, val int) *Program {
	p.instrs = append(p.instrs, instr{op: op, val: val})
	return p
}

func (p *Program) emitLabel(op rematch.OpCode, target Label) *Program {
	p.instrs = append(p.instrs, instr{op: op, label: target})
	return p
}

// Nop emits a no-op instruction.
func (p *Program) Nop() *Program { return p.emit(rematch.OpNop, 0) }

// Char emits ONECHAR, matching a single literal code point.
func (p *Program) Char(c rune) *Program { return p.emit(rematch.OpOneChar, int(c)) }

// StringLit emits STRING followed by its mandatory STRING_LEN operand,
// appending s to the pattern's literal-text pool.
func (p *Program) StringLit(s string) *Program {
	units := utf16.Encode([]rune(s))
	start := len(p.lit)
	p.lit = append(p.lit, units...)
	p.emit(rematch.OpString, start)
	p.emit(rematch.OpStringLen, len(units))
	return p
}

// Jmp emits an unconditional jump to target.
func (p *Program) Jmp(target Label) *Program { return p.emitLabel(rematch.OpJmp, target) }

// StateSave emits a STATE_SAVE whose backtrack continuation is target.
func (p *Program) StateSave(target Label) *Program {
	return p.emitLabel(rematch.OpStateSave, target)
}

// Backtrack emits an explicit BACKTRACK instruction (unconditional failure
// of the current path, forcing a pop of the most recent STATE_SAVE frame).
func (p *Program) Backtrack() *Program { return p.emit(rematch.OpBacktrack, 0) }

// End emits END, the sole success terminal.
func (p *Program) End() *Program { return p.emit(rematch.OpEnd, 0) }

// Fail emits FAIL, the sole unconditional-failure terminal.
func (p *Program) Fail() *Program { return p.emit(rematch.OpFail, 0) }

// StartCapture emits START_CAPTURE for user group g (1..N).
func (p *Program) StartCapture(g int) *Program { return p.emit(rematch.OpStartCapture, g) }

// EndCapture emits END_CAPTURE for user group g (1..N).
func (p *Program) EndCapture(g int) *Program { return p.emit(rematch.OpEndCapture, g) }

// Caret emits CARET (^, start-of-input anchor).
func (p *Program) Caret() *Program { return p.emit(rematch.OpCaret, 0) }

// Dollar emits DOLLAR ($, end-of-input/line anchor).
func (p *Program) Dollar() *Program { return p.emit(rematch.OpDollar, 0) }

// BackslashA emits \A (absolute start-of-input).
func (p *Program) BackslashA() *Program { return p.emit(rematch.OpBackslashA, 0) }

// BackslashB emits \b (word boundary) when negate is false, \B otherwise.
func (p *Program) BackslashB(negate bool) *Program {
	v := 0
	if negate {
		v = 1
	}
	return p.emit(rematch.OpBackslashB, v)
}

// BackslashD emits \d (decimal digit) when negate is false, \D otherwise.
func (p *Program) BackslashD(negate bool) *Program {
	v := 0
	if negate {
		v = 1
	}
	return p.emit(rematch.OpBackslashD, v)
}

// BackslashG emits \G (end of previous match).
func (p *Program) BackslashG() *Program { return p.emit(rematch.OpBackslashG, 0) }

// BackslashX emits \X (extended grapheme cluster).
func (p *Program) BackslashX() *Program { return p.emit(rematch.OpBackslashX, 0) }

// BackslashZ emits \Z (absolute end-of-input).
func (p *Program) BackslashZ() *Program { return p.emit(rematch.OpBackslashZ, 0) }

// DotAny emits . (any character except line terminators).
func (p *Program) DotAny() *Program { return p.emit(rematch.OpDotAny, 0) }

// DotAnyAll emits . under dot-all semantics (any character, CRLF treated as
// one unit).
func (p *Program) DotAnyAll() *Program { return p.emit(rematch.OpDotAnyAll, 0) }

// StaticSetRef emits STATIC_SETREF against the well-known set at idx (see
// rematch.WordSet), negated if negate is true.
func (p *Program) StaticSetRef(idx int, negate bool) *Program {
	v := idx
	if negate {
		v |= rematch.NegSet
	}
	return p.emit(rematch.OpStaticSetRef, v)
}

// SetRef emits SETREF against set, adding it to the program's user-set
// table and returning its index's program for chaining.
func (p *Program) SetRef(set rematch.CharSet) *Program {
	if len(p.sets) == 0 {
		p.sets = append(p.sets, nil) // index 0 is reserved, mirroring StaticSets
	}
	idx := len(p.sets)
	p.sets = append(p.sets, set)
	return p.emit(rematch.OpSetRef, idx)
}

// Assemble resolves every label reference and produces the finished
// CompiledPattern. It returns an error, wrapped with context, if any Jmp or
// StateSave target was never defined with Label.
func (p *Program) Assemble() (*rematch.CompiledPattern, error) {
	code := make([]uint32, 0, len(p.instrs))
	for i, in := range p.instrs {
		val := in.val
		if in.label != "" {
			target, ok := p.labels[in.label]
			if !ok {
				return nil, errors.Errorf("asm: instruction %d (%s) references undefined label %q", i, in.op, in.label)
			}
			val = target
		}
		word, err := packInstruction(in.op, val, i)
		if err != nil {
			return nil, err
		}
		code = append(code, word)
	}
	return rematch.NewCompiledPattern(code, p.lit, p.sets, nil, p.numCaptureGroups, p.maxCaptureDigits), nil
}

func packInstruction(op rematch.OpCode, val, idx int) (word uint32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(errors.Errorf("%v", r), "asm: instruction %d (%s)", idx, op)
		}
	}()
	return rematch.MakeInstruction(op, val), nil
}

// NumCaptureGroups reports N for the program under construction.
func (p *Program) NumCaptureGroups() int { return p.numCaptureGroups }
