package errors

import (
	"fmt"
	"strings"
)

// StackFrame is one activation record, pushed when a method begins
// executing and popped when it returns. Grounded on
// original_source/QLang/QError.h's QStackFrame, with the
// go-dws/internal/errors/stack_trace.go StackFrame{}.String() rendering
// style.
type StackFrame struct {
	FunctionName string
	ClassName    string
	Line         int
}

func (f StackFrame) String() string {
	var sb strings.Builder
	if f.ClassName != "" {
		sb.WriteString(f.ClassName + ".")
	}
	sb.WriteString(f.FunctionName + "()")
	if f.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", f.Line)
	}
	return sb.String()
}

// CallStack is QLang's C4 component: a LIFO stack of StackFrame used by
// the evaluator to attribute runtime diagnostics to the method in which
// they occurred, and to render a stack trace alongside fatal errors.
type CallStack struct {
	frames []StackFrame
}

func NewCallStack() *CallStack { return &CallStack{} }

func (s *CallStack) Push(functionName, className string, line int) {
	s.frames = append(s.frames, StackFrame{functionName, className, line})
}

func (s *CallStack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *CallStack) Clear()          { s.frames = nil }
func (s *CallStack) IsEmpty() bool   { return len(s.frames) == 0 }
func (s *CallStack) Depth() int      { return len(s.frames) }

// Top returns the innermost (most recently pushed) frame.
func (s *CallStack) Top() (StackFrame, bool) {
	if len(s.frames) == 0 {
		return StackFrame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Bottom returns the outermost frame.
func (s *CallStack) Bottom() (StackFrame, bool) {
	if len(s.frames) == 0 {
		return StackFrame{}, false
	}
	return s.frames[0], true
}

// Trace renders the stack newest-frame-first, matching
// QCallStack::GetStackTrace.
func (s *CallStack) Trace() string {
	if len(s.frames) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Stack trace:\n")
	for i := len(s.frames) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "  %d. %s\n", len(s.frames)-i, s.frames[i])
	}
	return sb.String()
}

// CurrentContext returns "ClassName.FunctionName()" for the innermost
// frame, or "" if the stack is empty — used as a Diagnostic.Context value.
func (s *CallStack) CurrentContext() string {
	top, ok := s.Top()
	if !ok {
		return ""
	}
	return top.String()
}
