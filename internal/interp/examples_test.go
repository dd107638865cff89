package interp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/lexer"
	"github.com/StarSignalAnt/qlang/internal/parser"
	"github.com/StarSignalAnt/qlang/internal/runtime"
)

// examplesDir locates the repo-root examples/ directory from this
// package's test working directory (internal/interp).
func examplesDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "examples"))
	if err != nil {
		t.Fatalf("failed to resolve examples dir: %v", err)
	}
	return dir
}

func loadExample(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(examplesDir(t), name))
	if err != nil {
		t.Fatalf("failed to read example %s: %v", name, err)
	}
	return string(content)
}

// runExample is run (interp_test.go's helper) plus the same `Log` native
// cmd/qlang/cmd/run.go registers, since every examples/*.ql script calls
// it as cmd/qlang's embedding host would.
func runExample(t *testing.T, src string) (*Evaluator, *errors.Collector) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(src)
	prog := parser.New(toks, collector).Parse()
	if collector.HasErrors() {
		t.Fatalf("parse errors: %s", collector.List(errors.ListOptions{}))
	}
	ev := New(collector)
	ev.RegisterNative("Log", func(args []runtime.Value) runtime.Value {
		return runtime.NullValue
	})
	ev.Run(prog)
	return ev, collector
}

// TestExampleS1Arithmetic covers spec.md §8's S1 scenario.
func TestExampleS1Arithmetic(t *testing.T) {
	ev, collector := runExample(t, loadExample(t, "s1_arithmetic.ql"))
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	a, _ := ev.FindVar("a")
	wantInt32(t, a, 14)
	b, _ := ev.FindVar("b")
	wantInt32(t, b, 20)
}

// TestExampleS2ConstructorField covers spec.md §8's S2 scenario.
func TestExampleS2ConstructorField(t *testing.T) {
	ev, collector := runExample(t, loadExample(t, "s2_constructor_field.ql"))
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	r, _ := ev.FindVar("r")
	wantInt32(t, r, 7)
}

// TestExampleS3InheritanceOverload covers spec.md §8's S3 scenario: a
// strict int32 match on the parent class wins over a fuzzy float32
// match on the subclass itself.
func TestExampleS3InheritanceOverload(t *testing.T) {
	ev, collector := runExample(t, loadExample(t, "s3_inheritance_overload.ql"))
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	x, _ := ev.FindVar("x")
	wantInt32(t, x, 3)
	y, _ := ev.FindVar("y")
	wantInt32(t, y, 100)
}

// TestExampleS4OperatorOverload covers spec.md §8's S4 scenario.
func TestExampleS4OperatorOverload(t *testing.T) {
	ev, collector := runExample(t, loadExample(t, "s4_operator_overload.ql"))
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	n, _ := ev.FindVar("n")
	wantInt32(t, n, 7)
}

// TestExampleS5NullComparison covers spec.md §8's S5 scenario.
func TestExampleS5NullComparison(t *testing.T) {
	ev, collector := runExample(t, loadExample(t, "s5_null_comparison.ql"))
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	e1, _ := ev.FindVar("e1")
	wantBool(t, e1, true)
	e2, _ := ev.FindVar("e2")
	wantBool(t, e2, false)
}

func wantBool(t *testing.T, v runtime.Value, want bool) {
	t.Helper()
	b, ok := v.(*runtime.Bool)
	if !ok || b.Value != want {
		t.Fatalf("got %#v, want bool %v", v, want)
	}
}

// TestExampleS6ForLoopStep covers spec.md §8's S6 scenario.
func TestExampleS6ForLoopStep(t *testing.T) {
	ev, collector := runExample(t, loadExample(t, "s6_for_loop_step.ql"))
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	s, _ := ev.FindVar("s")
	wantInt32(t, s, 30)
}
