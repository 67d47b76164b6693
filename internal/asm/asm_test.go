package asm

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/ashbyte/rematch"
)

func TestAssembleLiteral(t *testing.T) {
	p := New(0, 0)
	p.StringLit("ab").End()

	pat, err := p.Assemble()
	assert.NilError(t, err)
	assert.Equal(t, len(pat.Code), 3)
	assert.Equal(t, rematch.TYPE(pat.Code[0]), rematch.OpString)
	assert.Equal(t, rematch.TYPE(pat.Code[1]), rematch.OpStringLen)
	assert.Equal(t, rematch.VAL(pat.Code[1]), 2)
	assert.Equal(t, rematch.TYPE(pat.Code[2]), rematch.OpEnd)
}

func TestAssembleAlternation(t *testing.T) {
	// (?:a|b) as STATE_SAVE/JMP, the way a real compiler would lower it.
	p := New(0, 0)
	p.StateSave("tryB")
	p.Char('a')
	p.Jmp("done")
	p.Label("tryB")
	p.Char('b')
	p.Label("done")
	p.End()

	pat, err := p.Assemble()
	assert.NilError(t, err)

	m := rematch.NewMatcher(pat)
	m.ResetString("b")
	assert.Assert(t, m.LookingAt())

	m.ResetString("a")
	assert.Assert(t, m.LookingAt())

	m.ResetString("c")
	assert.Assert(t, !m.LookingAt())
}

func TestAssembleUndefinedLabel(t *testing.T) {
	p := New(0, 0)
	p.Jmp("nowhere")
	p.End()

	_, err := p.Assemble()
	assert.ErrorContains(t, err, "undefined label")
}

func TestAssembleCaptureGroup(t *testing.T) {
	p := New(1, 1)
	p.StartCapture(1)
	p.Char('x')
	p.EndCapture(1)
	p.End()

	pat, err := p.Assemble()
	assert.NilError(t, err)

	m := rematch.NewMatcher(pat)
	m.ResetString("x")
	assert.Assert(t, m.LookingAt())

	g, err := m.Group(1)
	assert.NilError(t, err)
	assert.Equal(t, g, "x")
}

func TestAssembleOperandOutOfRange(t *testing.T) {
	p := New(0, 0)
	p.emit(rematch.OpOneChar, 1<<30)

	_, err := p.Assemble()
	assert.ErrorContains(t, err, "instruction 0")
}
