package rematch

// Package rematch implements the ICU-style backtracking regular-expression
// matching engine: given a precompiled pattern (opcodes plus auxiliary
// tables) and a UTF-16 subject, it locates matches, exposes capture-group
// boundaries, and implements search/replace operations. Compiling pattern
// syntax into a CompiledPattern is out of scope for this package; callers
// assemble one directly (see internal/asm) or generate one ahead of time
// (see internal/progdump).

// OpCode identifies a single bytecode operation. It occupies the high byte
// of an instruction word; the remaining 24 bits hold the operand (VAL).
type OpCode uint8

const (
	OpNop OpCode = iota
	OpBacktrack
	OpOneChar
	OpString
	OpStringLen
	OpStateSave
	OpJmp
	OpEnd
	OpFail
	OpStartCapture
	OpEndCapture
	OpCaret
	OpDollar
	OpBackslashA
	OpBackslashB
	OpBackslashD
	OpBackslashG
	OpBackslashX
	OpBackslashZ
	OpStaticSetRef
	OpSetRef
	OpDotAny
	OpDotAnyAll
)

func (op OpCode) String() string {
	switch op {
	case OpNop:
		return "NOP"
	case OpBacktrack:
		return "BACKTRACK"
	case OpOneChar:
		return "ONECHAR"
	case OpString:
		return "STRING"
	case OpStringLen:
		return "STRING_LEN"
	case OpStateSave:
		return "STATE_SAVE"
	case OpJmp:
		return "JMP"
	case OpEnd:
		return "END"
	case OpFail:
		return "FAIL"
	case OpStartCapture:
		return "START_CAPTURE"
	case OpEndCapture:
		return "END_CAPTURE"
	case OpCaret:
		return "CARET"
	case OpDollar:
		return "DOLLAR"
	case OpBackslashA:
		return "BACKSLASH_A"
	case OpBackslashB:
		return "BACKSLASH_B"
	case OpBackslashD:
		return "BACKSLASH_D"
	case OpBackslashG:
		return "BACKSLASH_G"
	case OpBackslashX:
		return "BACKSLASH_X"
	case OpBackslashZ:
		return "BACKSLASH_Z"
	case OpStaticSetRef:
		return "STATIC_SETREF"
	case OpSetRef:
		return "SETREF"
	case OpDotAny:
		return "DOTANY"
	case OpDotAnyAll:
		return "DOTANY_ALL"
	}
	return "?"
}

const (
	// opValShift is the width, in bits, of the VAL field packed into the
	// low bits of every instruction word.
	opValShift = 24
	opValMask  = 1<<opValShift - 1

	// NegSet is the single high bit within a STATIC_SETREF operand that
	// flips match polarity.
	NegSet = 1 << (opValShift - 1)
)

// TYPE extracts the opcode tag from an instruction word.
func TYPE(word uint32) OpCode { return OpCode(word >> opValShift) }

// VAL extracts the operand from an instruction word.
func VAL(word uint32) int { return int(word & opValMask) }

// MakeInstruction packs an opcode and an operand into a single instruction
// word. It panics if val does not fit in the operand field; the pattern
// compiler (out of scope here) is responsible for never emitting one that
// doesn't.
func MakeInstruction(op OpCode, val int) uint32 {
	if val < 0 || val > opValMask {
		panic("rematch: instruction operand out of range")
	}
	return uint32(op)<<opValShift | uint32(val)
}

// Static-set indices, addressed by STATIC_SETREF's operand. Index 0 is
// reserved and never valid as an operand, matching ICU's own
// "0 < opValue < LAST_SET" contract.
const (
	staticSetReserved = iota
	// WordSet is the well-known static-set index used by \b, \B, and the
	// word-boundary predicate.
	WordSet
	// LastStaticSet is one past the last valid static-set index.
	LastStaticSet
)

// CharSet is a read-only membership query over a character set. The engine
// only ever queries sets; building one is the out-of-scope compiler's job.
type CharSet interface {
	Contains(cp rune) bool
}

// CompiledPattern is the contract between an (out-of-scope) pattern compiler
// and this engine. It is immutable once constructed and may be shared by
// any number of concurrently-running Matchers.
type CompiledPattern struct {
	// Code is the ordered sequence of instruction words.
	Code []uint32
	// LiteralText holds every literal run referenced by STRING opcodes,
	// as UTF-16 code units.
	LiteralText []uint16
	// Sets is the ordered table of user-defined character sets, addressed
	// by SETREF's operand.
	Sets []CharSet
	// StaticSets is the small fixed-index table of predefined sets
	// (see WordSet), addressed by STATIC_SETREF's operand.
	StaticSets []CharSet
	// NumCaptureGroups is N: group 0 is the whole match, user groups are
	// 1..N.
	NumCaptureGroups int
	// MaxCaptureDigits bounds how many decimal digits appendReplacement
	// consumes when parsing a $k backreference.
	MaxCaptureDigits int
}

// NewCompiledPattern assembles the fields above into a CompiledPattern. It
// performs no validation beyond what is needed to size the StaticSets table
// sensibly: honoring the compiler contract is the caller's job.
func NewCompiledPattern(code []uint32, literalText []uint16, sets []CharSet, staticSets []CharSet, numCaptureGroups, maxCaptureDigits int) *CompiledPattern {
	if staticSets == nil {
		staticSets = DefaultStaticSets()
	}
	return &CompiledPattern{
		Code:             code,
		LiteralText:      literalText,
		Sets:             sets,
		StaticSets:       staticSets,
		NumCaptureGroups: numCaptureGroups,
		MaxCaptureDigits: maxCaptureDigits,
	}
}
