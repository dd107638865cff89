// Package errors implements QLang's C3 diagnostic sink and C4 call stack.
//
// It is grounded on two sources: go-dws's internal/errors package
// (CompilerError.Format / FormatErrors — source-line-plus-caret rendering)
// for the Go idiom, and the richer original_source/QLang/QError.h
// (QErrorCollector.ListErrors) for the exact severity-counted, per-function
// listing algorithm this package reproduces in Collector.List.
package errors

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/StarSignalAnt/qlang/pkg/token"
)

// Severity mirrors original_source/QLang/QError.h's QErrorSeverity.
type Severity int

const (
	Warning Severity = iota // non-fatal, execution continues
	Error                   // may affect execution
	Fatal                   // stops execution
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single structured error or warning, equivalent to QError.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
	Length   int    // length of the offending token/segment, 0 if unknown
	Source   string // "lexer", "parser", "runtime", "validator"
	Context  string // "ClassName.MethodName" stack context, if any
}

// String renders a single diagnostic the way QError::ToString does.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString("[" + d.Severity.String() + "] ")
	if d.Pos.Line > 0 {
		sb.WriteString("Line " + strconv.Itoa(d.Pos.Line))
		if d.Pos.Column > 0 {
			sb.WriteString(":" + strconv.Itoa(d.Pos.Column))
		}
		sb.WriteString(" - ")
	}
	sb.WriteString(d.Message)
	if d.Context != "" {
		sb.WriteString(" (in " + d.Context + ")")
	}
	return sb.String()
}

type contextRange struct{ start, end int }

// Collector accumulates diagnostics over a compile/run pass. It is QLang's
// C3 component: the parser, validator and evaluator all report into one
// shared Collector so the host sees one unified diagnostic stream.
type Collector struct {
	diagnostics []Diagnostic
	sourceLines []string
	ranges      map[string]contextRange

	errorCount   int
	warningCount int
	fatalCount   int
}

func NewCollector() *Collector {
	return &Collector{ranges: make(map[string]contextRange)}
}

// SetSource records the program text so List can print source context.
func (c *Collector) SetSource(source string) {
	c.sourceLines = strings.Split(source, "\n")
}

// RegisterContext records the [start,end] line range of a function/method
// body under name (e.g. "Animal.Speak"), so List can print the whole body
// around a diagnostic raised inside it.
func (c *Collector) RegisterContext(name string, startLine, endLine int) {
	c.ranges[name] = contextRange{startLine, endLine}
}

// Report records a diagnostic.
func (c *Collector) Report(severity Severity, message string, pos token.Position, length int, source, context string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: severity,
		Message:  message,
		Pos:      pos,
		Length:   length,
		Source:   source,
		Context:  context,
	})
	switch severity {
	case Warning:
		c.warningCount++
	case Error:
		c.errorCount++
	case Fatal:
		c.fatalCount++
	}
}

// ReportRuntime records an Error-severity diagnostic with a call-stack
// trace appended to the message, matching ReportRuntimeError.
func (c *Collector) ReportRuntime(message string, stack *CallStack, pos token.Position, length int) {
	full := message
	if !stack.IsEmpty() {
		full += "\n" + stack.Trace()
	}
	c.Report(Error, full, pos, length, "runtime", stack.CurrentContext())
}

func (c *Collector) Diagnostics() []Diagnostic { return c.diagnostics }
func (c *Collector) HasErrors() bool           { return c.errorCount > 0 || c.fatalCount > 0 }
func (c *Collector) HasAnyIssues() bool        { return len(c.diagnostics) > 0 }
func (c *Collector) ErrorCount() int           { return c.errorCount }
func (c *Collector) WarningCount() int         { return c.warningCount }
func (c *Collector) FatalCount() int           { return c.fatalCount }
func (c *Collector) TotalCount() int           { return len(c.diagnostics) }

func (c *Collector) Clear() {
	c.diagnostics = nil
	c.errorCount, c.warningCount, c.fatalCount = 0, 0, 0
}

// ListOptions controls Collector.List's rendering.
type ListOptions struct {
	// ShowFunctionBody prints the whole registered context range around
	// an offending line (with a ">>" marker) instead of just that line.
	ShowFunctionBody bool
}

// List renders every diagnostic the way QErrorCollector::ListErrors does:
// a header with per-severity counts, then one numbered entry per
// diagnostic with its "Function: X of class type Y" (or "Context: X")
// header line, then either the single source line or (when
// opts.ShowFunctionBody and a context range was registered) the whole
// function body with the error line marked ">>" and the offending
// segment wrapped in brackets (or a caret fallback when no length is
// known).
func (c *Collector) List(opts ListOptions) string {
	var sb strings.Builder

	if len(c.diagnostics) == 0 {
		sb.WriteString("No errors reported.\n")
		return sb.String()
	}

	sb.WriteString("=== QLang Errors ===\n")
	fmt.Fprintf(&sb, "Total: %d issue(s) - %d fatal, %d error(s), %d warning(s)\n\n",
		len(c.diagnostics), c.fatalCount, c.errorCount, c.warningCount)

	for i, d := range c.diagnostics {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, d.String())

		ctxName := d.Context
		if idx := strings.IndexByte(ctxName, '('); idx >= 0 {
			ctxName = ctxName[:idx]
		}

		var className, methodName string
		if idx := strings.IndexByte(ctxName, '.'); idx >= 0 {
			className, methodName = ctxName[:idx], ctxName[idx+1:]
			fmt.Fprintf(&sb, "   Function: %s of class type %s\n", methodName, className)
		} else if ctxName != "" {
			fmt.Fprintf(&sb, "   Context: %s\n", ctxName)
		}

		if rng, ok := c.ranges[ctxName]; opts.ShowFunctionBody && ctxName != "" && ok {
			sb.WriteString("   --------------------------------------------------\n")
			for l := rng.start; l <= rng.end; l++ {
				if l < 1 || l > len(c.sourceLines) {
					continue
				}
				lineStr := c.sourceLines[l-1]
				if l == d.Pos.Line && d.Pos.Column > 0 && d.Length > 0 {
					lineStr = bracketHighlight(lineStr, d.Pos.Column, d.Length)
				}
				prefix := "   "
				if l == d.Pos.Line {
					prefix = ">> "
				}
				fmt.Fprintf(&sb, "%s%d: %s\n", prefix, l, lineStr)
				if l == d.Pos.Line && d.Pos.Column > 0 && d.Length == 0 {
					sb.WriteString(caretLine(d.Pos.Column, l < 10))
				}
			}
			sb.WriteString("   --------------------------------------------------\n")
		} else if d.Pos.Line > 0 && d.Pos.Line <= len(c.sourceLines) {
			lineStr := c.sourceLines[d.Pos.Line-1]
			if d.Pos.Column > 0 && d.Length > 0 {
				lineStr = bracketHighlight(lineStr, d.Pos.Column, d.Length)
			}
			fmt.Fprintf(&sb, "   %d: %s\n", d.Pos.Line, lineStr)
			if d.Pos.Column > 0 && d.Length == 0 {
				prefixLen := len(strconv.Itoa(d.Pos.Line)+": ") + 3
				sb.WriteString(strings.Repeat(" ", prefixLen+d.Pos.Column) + "^\n")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("====================\n")
	return sb.String()
}

func bracketHighlight(line string, column, length int) string {
	colIdx := column - 1
	if colIdx < 0 || colIdx >= len(line) {
		return line
	}
	end := colIdx + length
	if end > len(line) {
		end = len(line)
	}
	return line[:colIdx] + "[" + line[colIdx:end] + "]" + line[end:]
}

func caretLine(column int, shortLine bool) string {
	pad := 3
	if !shortLine {
		pad = 4
	}
	return "      " + strings.Repeat(" ", column+pad-1) + "^\n"
}

// JSON-friendly representation for cmd/qlang check --format=json.
type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Length   int    `json:"length"`
	Source   string `json:"source"`
	Context  string `json:"context,omitempty"`
}

// AsJSONRecords returns the diagnostics in a shape meant to be marshaled by
// a gjson/sjson-based caller (see cmd/qlang/cmd/check.go), sorted by
// position for stable output.
func (c *Collector) AsJSONRecords() []jsonDiagnostic {
	out := make([]jsonDiagnostic, 0, len(c.diagnostics))
	for _, d := range c.diagnostics {
		out = append(out, jsonDiagnostic{
			Severity: d.Severity.String(),
			Message:  d.Message,
			Line:     d.Pos.Line,
			Column:   d.Pos.Column,
			Length:   d.Length,
			Source:   d.Source,
			Context:  d.Context,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}
