// Package progdump renders an assembled rematch.CompiledPattern as Go
// source: a single var declaration built from the instruction words,
// literal text, and user set table (StaticSets is rendered as nil, so the
// generated pattern gets DefaultStaticSets), the same way KromDaniel/regengo's
// inspect_program.go turns a compiled artifact into inspectable Go code
// instead of something parsed again at runtime.
package progdump

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"
	"github.com/pkg/errors"

	"github.com/ashbyte/rematch"
)

// Options controls how Dump names and shapes the generated declaration.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// VarName is the identifier the CompiledPattern literal is bound to.
	VarName string
	// SetExprs supplies, in Sets order, the Go expression that reconstructs
	// each non-nil rematch.CharSet; CharSet values can't be dumped as data
	// literals, only as code that rebuilds them, so the caller provides the
	// constructor expression for each one (e.g. an asm.Program's own
	// sets are opaque closures/rangeSets progdump cannot introspect).
	SetExprs []jen.Code
}

// Dump renders pat as a Go source file assigning opts.VarName a
// *rematch.CompiledPattern literal, and returns the formatted source.
func Dump(pat *rematch.CompiledPattern, opts Options) ([]byte, error) {
	if len(opts.SetExprs) != len(pat.Sets) {
		return nil, errors.Errorf("progdump: %d set expressions supplied for %d sets", len(opts.SetExprs), len(pat.Sets))
	}

	f := jen.NewFile(opts.Package)
	f.Comment(fmt.Sprintf("Code generated by progdump for a %d-instruction program. DO NOT EDIT.", len(pat.Code)))
	f.Line()

	codeLits := make([]jen.Code, len(pat.Code))
	for i, w := range pat.Code {
		codeLits[i] = jen.Lit(w)
	}

	litLits := make([]jen.Code, len(pat.LiteralText))
	for i, u := range pat.LiteralText {
		litLits[i] = jen.Lit(u)
	}

	f.Var().Id(opts.VarName).Op("=").Qual("github.com/ashbyte/rematch", "NewCompiledPattern").Call(
		jen.Index().Uint32().Values(codeLits...),
		jen.Index().Uint16().Values(litLits...),
		jen.Index().Qual("github.com/ashbyte/rematch", "CharSet").Values(opts.SetExprs...),
		jen.Nil(),
		jen.Lit(pat.NumCaptureGroups),
		jen.Lit(pat.MaxCaptureDigits),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrap(err, "progdump: rendering source")
	}
	return buf.Bytes(), nil
}

// DumpFile is Dump followed by a write to path, in the style of
// regengo's Compiler.Generate/formatFile pair.
func DumpFile(pat *rematch.CompiledPattern, opts Options, path string) error {
	src, err := Dump(pat, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0644); err != nil {
		return errors.Wrapf(err, "progdump: writing %s", path)
	}
	return nil
}
