package errors

import (
	"strings"
	"testing"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: Error,
		Message:  "unknown member 'Foo'",
		Pos:      token.Position{Line: 4, Column: 10},
		Context:  "Animal.Speak",
	}
	got := d.String()
	want := "[Error] Line 4:10 - unknown member 'Foo' (in Animal.Speak)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.Report(Warning, "unreachable statement", token.Position{Line: 1}, 0, "validator", "")
	c.Report(Error, "type mismatch", token.Position{Line: 2}, 0, "runtime", "")
	c.Report(Fatal, "stack overflow", token.Position{Line: 3}, 0, "runtime", "")

	if c.WarningCount() != 1 || c.ErrorCount() != 1 || c.FatalCount() != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", c.WarningCount(), c.ErrorCount(), c.FatalCount())
	}
	if !c.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
	if c.TotalCount() != 3 {
		t.Fatalf("TotalCount() = %d, want 3", c.TotalCount())
	}
}

func TestCollectorNoErrors(t *testing.T) {
	c := NewCollector()
	if c.HasAnyIssues() {
		t.Fatal("HasAnyIssues() = true on empty collector")
	}
	got := c.List(ListOptions{})
	if got != "No errors reported.\n" {
		t.Fatalf("List() = %q", got)
	}
}

func TestCollectorListSingleLine(t *testing.T) {
	c := NewCollector()
	c.SetSource("method Speak()\n  return age + \"x\";\nend")
	c.Report(Error, "cannot add int32 and string", token.Position{Line: 2, Column: 10}, 3, "runtime", "Animal.Speak")

	out := c.List(ListOptions{})
	if !strings.Contains(out, "Function: Speak of class type Animal") {
		t.Fatalf("missing function header in:\n%s", out)
	}
	if !strings.Contains(out, "[age") {
		t.Fatalf("missing bracket highlight in:\n%s", out)
	}
}

func TestCollectorListFunctionBody(t *testing.T) {
	c := NewCollector()
	src := "method Speak()\n  return age + \"x\";\nend"
	c.SetSource(src)
	c.RegisterContext("Animal.Speak", 1, 3)
	c.Report(Error, "cannot add int32 and string", token.Position{Line: 2, Column: 10}, 3, "runtime", "Animal.Speak")

	out := c.List(ListOptions{ShowFunctionBody: true})
	if !strings.Contains(out, ">> 2:") {
		t.Fatalf("missing >> marker in:\n%s", out)
	}
	if !strings.Contains(out, "1: method Speak()") {
		t.Fatalf("missing leading context line in:\n%s", out)
	}
}

func TestCallStackTraceOrder(t *testing.T) {
	s := NewCallStack()
	s.Push("Main", "", 1)
	s.Push("Speak", "Animal", 5)

	trace := s.Trace()
	// Newest frame first.
	idxSpeak := strings.Index(trace, "Animal.Speak")
	idxMain := strings.Index(trace, "Main()")
	if idxSpeak == -1 || idxMain == -1 || idxSpeak > idxMain {
		t.Fatalf("expected Animal.Speak before Main() in:\n%s", trace)
	}

	if s.CurrentContext() != "Animal.Speak() at line 5" {
		t.Fatalf("CurrentContext() = %q", s.CurrentContext())
	}

	s.Pop()
	if s.CurrentContext() != "Main() at line 1" {
		t.Fatalf("CurrentContext() after pop = %q", s.CurrentContext())
	}
	s.Pop()
	if !s.IsEmpty() {
		t.Fatal("expected empty stack")
	}
}
