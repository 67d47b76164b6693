package progdump

import (
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"gotest.tools/v3/assert"

	"github.com/ashbyte/rematch"
)

func TestDumpProducesCompilableShape(t *testing.T) {
	pat := rematch.NewCompiledPattern(
		[]uint32{
			rematch.MakeInstruction(rematch.OpOneChar, 'x'),
			rematch.MakeInstruction(rematch.OpEnd, 0),
		},
		nil,
		nil,
		nil,
		0,
		0,
	)

	src, err := Dump(pat, Options{Package: "fixtures", VarName: "SingleCharProgram"})
	assert.NilError(t, err)

	out := string(src)
	assert.Assert(t, strings.Contains(out, "package fixtures"))
	assert.Assert(t, strings.Contains(out, "SingleCharProgram"))
	assert.Assert(t, strings.Contains(out, "NewCompiledPattern"))
}

func TestDumpRejectsMismatchedSetExprs(t *testing.T) {
	pat := rematch.NewCompiledPattern(nil, nil, []rematch.CharSet{rematch.WordCharSet}, nil, 0, 0)

	_, err := Dump(pat, Options{Package: "fixtures", VarName: "P", SetExprs: nil})
	assert.ErrorContains(t, err, "0 set expressions supplied for 1 sets")
}

func TestDumpWithSetExprs(t *testing.T) {
	pat := rematch.NewCompiledPattern(nil, nil, []rematch.CharSet{rematch.WordCharSet}, nil, 0, 0)

	src, err := Dump(pat, Options{
		Package:  "fixtures",
		VarName:  "P",
		SetExprs: []jen.Code{jen.Qual("github.com/ashbyte/rematch", "WordCharSet")},
	})
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(src), "WordCharSet"))
}
