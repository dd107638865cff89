package errors

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// Golden-output coverage for Collector.List, the format the CLI's `check`
// and `run` commands print to a human. Grounded in go-dws's own use of
// go-snaps for exactly this kind of multi-line rendered-output assertion
// (internal/interp/fixture_test.go).
func TestCollectorListSnapshot(t *testing.T) {
	c := NewCollector()
	src := "class Animal\n  int32 age;\n  method Speak()\n    return age + \"x\";\n  end\nend"
	c.SetSource(src)
	c.RegisterContext("Animal.Speak", 3, 5)
	c.Report(Error, "cannot add int32 and string", token.Position{Line: 4, Column: 12}, 3, "runtime", "Animal.Speak")
	c.Report(Warning, "unreachable statement", token.Position{Line: 5}, 0, "validator", "Animal.Speak")

	snaps.MatchSnapshot(t, c.List(ListOptions{ShowFunctionBody: true}))
}
