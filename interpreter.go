package rematch

// matchAt is the bytecode interpreter. It attempts a match anchored at
// startIdx, leaving the result in m.match/m.matchStart/m.matchEnd/
// m.captureStarts/m.captureEnds. It never returns an error: the only
// failure modes that belong to the interpreter itself are programmer/
// compiler errors (unrecognised opcode, malformed capture bracketing, a
// frame-size mismatch), all of which are assertion failures here,
// surfaced as panics, exactly as U_ASSERT does in ICU.
func (m *Matcher) matchAt(startIdx int) {
	n := m.pattern.NumCaptureGroups
	for g := 0; g <= n; g++ {
		m.captureStarts[g] = -1
	}
	m.backtrack.Reset()

	code := m.pattern.Code
	lit := m.pattern.LiteralText
	sets := m.pattern.Sets
	staticSets := m.pattern.StaticSets
	input := m.input
	inputLen := m.inputLength

	inputIdx := startIdx
	patIdx := 0
	isMatch := false

	// backTrack pops the most recently saved frame and restores inputIdx,
	// patIdx, and every group's capture bounds from it. It reports false
	// when the stack is empty, which is a definitive match failure.
	backTrack := func() bool {
		block, ok := m.backtrack.PopBlock(m.captureStateSize)
		if !ok {
			return false
		}
		i := 0
		for g := n; g >= 1; g-- {
			m.captureStarts[g] = block[i]
			i++
			m.captureEnds[g] = block[i]
			i++
		}
		patIdx = int(block[i])
		i++
		inputIdx = int(block[i])
		return true
	}

dispatch:
	for {
		op := code[patIdx]
		opType := TYPE(op)
		opValue := VAL(op)
		patIdx++

		if m.Observer != nil {
			m.Observer(opType, patIdx-1, inputIdx)
		}

		switch opType {

		case OpNop:
			// no effect

		case OpBacktrack:
			if !backTrack() {
				isMatch = false
				break dispatch
			}

		case OpOneChar:
			matched := false
			if inputIdx < inputLen {
				c, newIdx := nextCodePoint(input, inputIdx)
				inputIdx = newIdx
				matched = c == rune(opValue)
			}
			if !matched {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpString:
			stringStart := opValue
			op2 := code[patIdx]
			patIdx++
			if TYPE(op2) != OpStringLen {
				panic("rematch: STRING not immediately followed by STRING_LEN")
			}
			stringLen := VAL(op2)
			stringEnd := inputIdx + stringLen
			if stringEnd <= inputLen && utf16Equal(input[inputIdx:stringEnd], lit[stringStart:stringStart+stringLen]) {
				inputIdx = stringEnd
			} else if !backTrack() {
				isMatch = false
				break dispatch
			}

		case OpStateSave:
			block := m.backtrack.ReserveBlock(m.captureStateSize)
			i := 0
			for g := n; g >= 1; g-- {
				block[i] = m.captureStarts[g]
				i++
				block[i] = m.captureEnds[g]
				i++
			}
			block[i] = int32(opValue)
			i++
			block[i] = int32(inputIdx)

		case OpJmp:
			patIdx = opValue

		case OpEnd:
			isMatch = true
			break dispatch

		case OpFail:
			isMatch = false
			break dispatch

		case OpStartCapture:
			if opValue < 1 || opValue > n {
				panic("rematch: START_CAPTURE operand out of range")
			}
			m.captureStarts[opValue] = int32(inputIdx)

		case OpEndCapture:
			if opValue < 1 || opValue > n || m.captureStarts[opValue] < 0 {
				panic("rematch: END_CAPTURE reached with no matching START_CAPTURE")
			}
			m.captureEnds[opValue] = int32(inputIdx)

		case OpCaret:
			if inputIdx != 0 {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpDollar:
			if !m.matchesDollar(inputIdx) {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpBackslashA:
			if inputIdx != 0 {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpBackslashB:
			success := m.isWordBoundary(inputIdx)
			if opValue != 0 {
				success = !success
			}
			if !success {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpBackslashD:
			success := false
			if inputIdx < inputLen {
				c, _ := nextCodePoint(input, inputIdx)
				success = charType(c) == DecimalDigitNumber
				if opValue != 0 {
					success = !success
				}
			}
			if success {
				_, inputIdx = nextCodePoint(input, inputIdx)
			} else if !backTrack() {
				isMatch = false
				break dispatch
			}

		case OpBackslashG:
			ok := (m.match && inputIdx == m.matchEnd) || (!m.match && inputIdx == 0)
			if !ok {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpBackslashX:
			if inputIdx >= inputLen {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
				break
			}
			c, newIdx := nextCodePoint(input, inputIdx)
			inputIdx = newIdx
			if c == 0x0D && inputIdx < inputLen {
				if nc, nIdx := nextCodePoint(input, inputIdx); nc == 0x0A {
					inputIdx = nIdx
					break
				}
			}
			if charType(c) != ControlChar {
				for inputIdx < inputLen {
					nc, nIdx := nextCodePoint(input, inputIdx)
					ct := charType(nc)
					if ct != NonSpacingMark && ct != EnclosingMark {
						break
					}
					inputIdx = nIdx
				}
			}

		case OpBackslashZ:
			if inputIdx != inputLen {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpStaticSetRef:
			neg := opValue&NegSet != 0
			idx := opValue &^ NegSet
			success := neg
			if inputIdx < inputLen {
				if idx <= 0 || idx >= len(staticSets) {
					panic("rematch: STATIC_SETREF operand out of range")
				}
				c, newIdx := nextCodePoint(input, inputIdx)
				inputIdx = newIdx
				if staticSets[idx].Contains(c) {
					success = !success
				}
			}
			if !success {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpSetRef:
			matched := false
			if inputIdx < inputLen {
				if opValue <= 0 || opValue >= len(sets) {
					panic("rematch: SETREF operand out of range")
				}
				c, newIdx := nextCodePoint(input, inputIdx)
				inputIdx = newIdx
				matched = sets[opValue].Contains(c)
			}
			if !matched {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpDotAny:
			if inputIdx >= inputLen {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
				break
			}
			c, newIdx := nextCodePoint(input, inputIdx)
			inputIdx = newIdx
			if isLineTerminator(c) {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
			}

		case OpDotAnyAll:
			if inputIdx >= inputLen {
				if !backTrack() {
					isMatch = false
					break dispatch
				}
				break
			}
			c, newIdx := nextCodePoint(input, inputIdx)
			inputIdx = newIdx
			if c == 0x0D && inputIdx < inputLen {
				if nc, nIdx := nextCodePoint(input, inputIdx); nc == 0x0A {
					inputIdx = nIdx
				}
			}

		default:
			panic("rematch: unrecognised opcode in compiled pattern")
		}
	}

	m.match = isMatch
	if isMatch {
		m.lastMatchEnd = m.matchEnd
		m.matchStart = startIdx
		m.matchEnd = inputIdx
		m.captureStarts[0] = int32(m.matchStart)
		m.captureEnds[0] = int32(m.matchEnd)
	}
}

// matchesDollar implements DOLLAR's end-of-line test with an unambiguous
// three-way check, rather than ICU's fragile "inputIdx < inputLength - 2"
// early exit: succeed at absolute end of input, one code unit before a
// terminal line break, or two code units before a terminal CR LF pair.
func (m *Matcher) matchesDollar(inputIdx int) bool {
	inputLen := m.inputLength
	if inputIdx == inputLen {
		return true
	}
	if inputIdx == inputLen-1 {
		c, _ := nextCodePoint(m.input, inputIdx)
		return isLineTerminator(c)
	}
	if inputIdx == inputLen-2 {
		c0, _ := nextCodePoint(m.input, inputIdx)
		c1, _ := nextCodePoint(m.input, inputIdx+1)
		return c0 == 0x0D && c1 == 0x0A
	}
	return false
}

// isWordBoundary implements the \b/\B word-boundary predicate. pos is
// assumed to be a valid code-unit boundary into m.input.
func (m *Matcher) isWordBoundary(pos int) bool {
	if pos >= m.inputLength {
		return false
	}
	c, _ := nextCodePoint(m.input, pos)
	if ct := charType(c); ct == NonSpacingMark || ct == EnclosingMark {
		return false
	}
	cIsWord := m.pattern.StaticSets[WordSet].Contains(c)

	prevIsWord := false
	prevPos := pos
	for prevPos > 0 {
		var prev rune
		prev, prevPos = prevCodePoint(m.input, prevPos)
		if ct := charType(prev); ct != NonSpacingMark && ct != EnclosingMark {
			prevIsWord = m.pattern.StaticSets[WordSet].Contains(prev)
			break
		}
	}
	return cIsWord != prevIsWord
}

func utf16Equal(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
