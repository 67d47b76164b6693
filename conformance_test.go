package rematch_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"

	"github.com/ashbyte/rematch"
	"github.com/ashbyte/rematch/internal/asm"
)

// fixture mirrors one entry of testdata/conformance.yaml: a hand-assembled
// VM program driven against an input string with a single matcher
// operation, checked against the expected match outcome and capture bounds.
type fixture struct {
	Name       string  `yaml:"name"`
	Program    string  `yaml:"program"`
	Input      string  `yaml:"input"`
	Op         string  `yaml:"op"`
	WantMatch  bool    `yaml:"wantMatch"`
	WantGroups [][]int `yaml:"wantGroups"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	data, err := os.ReadFile("testdata/conformance.yaml")
	assert.NilError(t, err)

	var fixtures []fixture
	assert.NilError(t, yaml.Unmarshal(data, &fixtures))
	return fixtures
}

func TestConformance(t *testing.T) {
	for _, fx := range loadFixtures(t) {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			prog, err := asm.Parse(strings.NewReader(fx.Program))
			assert.NilError(t, err)

			pat, err := prog.Assemble()
			assert.NilError(t, err)

			m := rematch.NewMatcher(pat)
			m.ResetString(fx.Input)

			var matched bool
			switch fx.Op {
			case "find":
				matched = m.Find()
			case "lookingAt":
				matched = m.LookingAt()
			case "matches":
				matched = m.Matches()
			default:
				t.Fatalf("unrecognised op %q", fx.Op)
			}

			assert.Equal(t, matched, fx.WantMatch)
			if !matched {
				return
			}

			gotGroups := make([][]int, m.GroupCount()+1)
			for g := 0; g <= m.GroupCount(); g++ {
				start, err := m.Start(g)
				assert.NilError(t, err)
				end, err := m.End(g)
				assert.NilError(t, err)
				gotGroups[g] = []int{start, end}
			}

			if fx.WantGroups != nil {
				if diff := cmp.Diff(fx.WantGroups, gotGroups); diff != "" {
					t.Errorf("capture bounds mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
