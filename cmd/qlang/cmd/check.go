package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/StarSignalAnt/qlang/internal/config"
	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/interp"
	"github.com/StarSignalAnt/qlang/internal/lexer"
	"github.com/StarSignalAnt/qlang/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	checkFormat   string
	checkKnownCls []string
	checkSeverity string
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a QLang file without running it",
	Long: `Parse and validate a QLang program, reporting diagnostics without
executing the program.

Examples:
  # Check a script file
  qlang check script.ql

  # Check and register host-provided class names so they aren't
  # flagged as unknown
  qlang check --known-class Engine --known-class Camera script.ql

  # Emit diagnostics as JSON
  qlang check --format=json script.ql

  # Emit only the Error-severity diagnostics, as JSON
  qlang check --format=json --severity=error script.ql`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "diagnostic output format: text or json")
	checkCmd.Flags().StringArrayVar(&checkKnownCls, "known-class", nil, "pre-register a host-provided class name (repeatable)")
	checkCmd.Flags().StringVar(&checkSeverity, "severity", "", "with --format=json, keep only this severity (error, warning, fatal)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	toks := lexer.New(input).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(input)
	program := parser.New(toks, collector).Parse()

	if !collector.HasErrors() {
		proj, err := config.Load(projectConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", projectConfigFile, err)
		}
		validator := interp.NewValidator(collector)
		validator.RegisterKnownClasses(proj.KnownClasses)
		validator.RegisterKnownClasses(checkKnownCls)
		validator.Validate(program)
	}

	switch checkFormat {
	case "json":
		out, err := diagnosticsJSON(collector)
		if err != nil {
			return fmt.Errorf("failed to render diagnostics as JSON: %w", err)
		}
		fmt.Println(out)
	default:
		if collector.HasAnyIssues() {
			fmt.Print(collector.List(errors.ListOptions{}))
		} else {
			fmt.Printf("%s: no issues found\n", filename)
		}
	}

	if collector.HasErrors() {
		return fmt.Errorf("%d error(s), %d warning(s)", collector.ErrorCount(), collector.WarningCount())
	}
	return nil
}

// diagnosticsJSON builds a `{"errors":N,"warnings":N,"diagnostics":[...]}`
// document from collector one field at a time via sjson.Set, rather than
// marshaling a throwaway Go struct - this mirrors how sjson is meant to be
// used for small, ad hoc JSON documents that don't warrant a dedicated type.
func diagnosticsJSON(collector *errors.Collector) (string, error) {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "errors", collector.ErrorCount())
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "warnings", collector.WarningCount())
	if err != nil {
		return "", err
	}

	records, err := json.Marshal(collector.AsJSONRecords())
	if err != nil {
		return "", err
	}
	final, err := sjson.SetRawBytes([]byte(doc), "diagnostics", records)
	if err != nil {
		return "", err
	}
	return filterBySeverity(string(final), checkSeverity), nil
}

// filterBySeverity re-queries doc's already-built "diagnostics" array with
// gjson and keeps only entries whose severity matches want (case-
// insensitive). An empty want leaves doc untouched.
func filterBySeverity(doc, want string) string {
	if want == "" {
		return doc
	}
	kept := "[]"
	n := 0
	for _, d := range gjson.Get(doc, "diagnostics").Array() {
		if strings.EqualFold(d.Get("severity").String(), want) {
			kept, _ = sjson.SetRaw(kept, strconv.Itoa(n), d.Raw)
			n++
		}
	}
	out, err := sjson.SetRaw(doc, "diagnostics", kept)
	if err != nil {
		return doc
	}
	return out
}
