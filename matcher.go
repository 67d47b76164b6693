package rematch

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Matcher is the public façade over the bytecode interpreter. It is bound
// to one CompiledPattern for its whole lifetime and is
// rebindable to a new subject string via ResetInput or ResetString. A Matcher is owned
// exclusively by its caller; concurrent use of a single Matcher from more
// than one goroutine is undefined, though any number of Matchers may share
// the same CompiledPattern concurrently.
type Matcher struct {
	pattern *CompiledPattern

	input       []uint16
	inputLength int

	captureStarts []int32
	captureEnds   []int32

	matchStart   int
	matchEnd     int
	lastMatchEnd int
	match        bool

	backtrack        *BacktrackStack
	captureStateSize int

	// Observer, when set, is consulted once per dispatch-loop iteration.
	// See StepObserver's doc comment for why this exists.
	Observer StepObserver
}

// NewMatcher creates a Matcher bound to pattern, with no input. Call
// ResetInput or ResetString with a subject before running
// find/lookingAt/matches.
func NewMatcher(pattern *CompiledPattern) *Matcher {
	n := pattern.NumCaptureGroups
	m := &Matcher{
		pattern:          pattern,
		captureStarts:    make([]int32, n+1),
		captureEnds:      make([]int32, n+1),
		backtrack:        NewBacktrackStack(),
		captureStateSize: 2*n + 2,
	}
	m.clearCaptures()
	return m
}

func (m *Matcher) clearCaptures() {
	for g := range m.captureStarts {
		m.captureStarts[g] = -1
	}
}

// Reset clears match state without touching the bound input.
func (m *Matcher) Reset() *Matcher {
	m.matchStart = 0
	m.matchEnd = 0
	m.lastMatchEnd = 0
	m.match = false
	m.clearCaptures()
	return m
}

// ResetInput rebinds the matcher to a new UTF-16 subject and resets match
// state.
func (m *Matcher) ResetInput(input []uint16) *Matcher {
	m.input = input
	m.inputLength = len(input)
	return m.Reset()
}

// ResetString is a convenience wrapper over ResetInput for callers holding
// a Go string rather than raw UTF-16.
func (m *Matcher) ResetString(s string) *Matcher {
	return m.ResetInput(utf16.Encode([]rune(s)))
}

// Pattern returns the CompiledPattern this matcher is bound to.
func (m *Matcher) Pattern() *CompiledPattern { return m.pattern }

// Input returns the UTF-16 subject this matcher is currently bound to.
func (m *Matcher) Input() []uint16 { return m.input }

// InputString decodes the bound subject back to a Go string.
func (m *Matcher) InputString() string {
	return string(utf16.Decode(m.input))
}

// GroupCount returns N, the number of user capture groups in the bound
// pattern.
func (m *Matcher) GroupCount() int { return m.pattern.NumCaptureGroups }

// Find scans forward from the end of the previous match (0 after Reset),
// code point by code point, until matchAt succeeds or the input is
// exhausted.
func (m *Matcher) Find() bool {
	for startPos := m.matchEnd; startPos < m.inputLength; startPos = moveIndex(m.input, startPos, 1) {
		m.matchAt(startPos)
		if m.match {
			return true
		}
	}
	return false
}

// FindFrom resets the matcher, then scans forward from start. start must be
// in [0, inputLength); as in the original, a start equal to inputLength is
// rejected even though a zero-width match there would otherwise be
// findable (see DESIGN.md's Open Questions).
func (m *Matcher) FindFrom(start int) (bool, error) {
	if start < 0 || start >= m.inputLength {
		return false, outOfBoundsError("Find", "start index out of bounds")
	}
	m.Reset()
	for startPos := start; startPos < m.inputLength; startPos = moveIndex(m.input, startPos, 1) {
		m.matchAt(startPos)
		if m.match {
			return true, nil
		}
	}
	return false, nil
}

// LookingAt anchors a match attempt at input position 0 without requiring
// it to consume the whole input.
func (m *Matcher) LookingAt() bool {
	m.Reset()
	m.matchAt(0)
	return m.match
}

// Matches anchors a match attempt at position 0 and additionally requires
// it to consume the whole input.
func (m *Matcher) Matches() bool {
	m.Reset()
	m.matchAt(0)
	return m.match && m.matchEnd == m.inputLength
}

// Start returns the start index of capture group g (0 is the whole match).
func (m *Matcher) Start(g int) (int, error) {
	if !m.match {
		return -1, invalidStateError("Start")
	}
	if g < 0 || g > m.pattern.NumCaptureGroups {
		return -1, outOfBoundsError("Start", "group index out of bounds")
	}
	if g == 0 {
		return m.matchStart, nil
	}
	return int(m.captureStarts[g]), nil
}

// End returns the end index of capture group g (0 is the whole match). It
// returns -1 when the group did not participate in the match, mirroring
// Start.
func (m *Matcher) End(g int) (int, error) {
	if !m.match {
		return -1, invalidStateError("End")
	}
	if g < 0 || g > m.pattern.NumCaptureGroups {
		return -1, outOfBoundsError("End", "group index out of bounds")
	}
	if g == 0 {
		return m.matchEnd, nil
	}
	if m.captureStarts[g] == -1 {
		return -1, nil
	}
	return int(m.captureEnds[g]), nil
}

// Group returns the substring matched by capture group g, or the empty
// string when g did not participate in the match.
func (m *Matcher) Group(g int) (string, error) {
	s, err := m.Start(g)
	if err != nil {
		return "", err
	}
	e, err := m.End(g)
	if err != nil {
		return "", err
	}
	if s < 0 {
		return "", nil
	}
	return string(utf16.Decode(m.input[s:e])), nil
}

// AppendReplacement appends the input between the previous and current
// match, followed by the expansion of repl, to dest.
func (m *Matcher) AppendReplacement(dest *strings.Builder, repl string) error {
	if !m.match {
		return invalidStateError("AppendReplacement")
	}

	if n := m.matchStart - m.lastMatchEnd; n > 0 {
		writeUTF16(dest, m.input[m.lastMatchEnd:m.matchStart])
	}

	replUnits := utf16.Encode([]rune(repl))
	replLen := len(replUnits)
	replIdx := 0
	for replIdx < replLen {
		c := replUnits[replIdx]
		replIdx++
		if c == '\\' {
			if replIdx >= replLen {
				break
			}
			dest.WriteRune(rune(replUnits[replIdx]))
			replIdx++
			continue
		}
		if c != '$' {
			dest.WriteRune(rune(c))
			continue
		}

		numDigits := 0
		groupNum := 0
		for numDigits < m.pattern.MaxCaptureDigits && replIdx < replLen {
			digitCp, newIdx := nextCodePoint(replUnits, replIdx)
			if !isDigit(digitCp) {
				break
			}
			replIdx = newIdx
			groupNum = groupNum*10 + digitValue(digitCp)
			numDigits++
		}

		if numDigits == 0 {
			dest.WriteByte('$')
			continue
		}

		g, err := m.Group(groupNum)
		if err != nil {
			return err
		}
		dest.WriteString(g)
	}
	return nil
}

// AppendTail appends everything in the input following the last match to
// dest.
func (m *Matcher) AppendTail(dest *strings.Builder) {
	if n := m.inputLength - m.matchEnd; n > 0 {
		writeUTF16(dest, m.input[m.matchEnd:m.inputLength])
	}
}

// ReplaceAll returns the result of replacing every match with the
// expansion of repl.
func (m *Matcher) ReplaceAll(repl string) string {
	var dest strings.Builder
	for m.Reset(); m.Find(); {
		// Find just set match=true, so appendReplacement cannot report an
		// invalid state here. Its only possible error, an out-of-range $k
		// group number, is dropped: the expansion stops at that $k.
		_ = m.AppendReplacement(&dest, repl)
	}
	m.AppendTail(&dest)
	return dest.String()
}

// ReplaceFirst returns the result of replacing only the first match with
// the expansion of repl, or the unmodified input if there is no match.
func (m *Matcher) ReplaceFirst(repl string) string {
	m.Reset()
	if !m.Find() {
		return m.InputString()
	}
	var dest strings.Builder
	_ = m.AppendReplacement(&dest, repl)
	m.AppendTail(&dest)
	return dest.String()
}

func writeUTF16(dest *strings.Builder, units []uint16) {
	for i := 0; i < len(units); {
		cp, next := nextCodePoint(units, i)
		if cp <= utf8.MaxRune {
			dest.WriteRune(cp)
		}
		i = next
	}
}
