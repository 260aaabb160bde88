package harness

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewTableReporter creates a reporter that renders one table per run
func NewTableReporter(out io.Writer) Reporter {
	return &tableReporter{out: out}
}

// tableReporter stays silent while a run is in progress
type tableReporter struct {
	out io.Writer
}

func (r *tableReporter) ReportSuiteStart(name string, checks int) {}

func (r *tableReporter) ReportCheck(outcome CheckOutcome) {}

func (r *tableReporter) ReportSuiteResult(result SuiteResult) {
	t := r.newWriter()
	t.SetTitle(result.Name)
	t.AppendHeader(table.Row{"Check", "Expression", "Expected", "Actual", "Result"})
	for _, o := range result.Outcomes {
		t.AppendRow(table.Row{o.Check, o.Expression, o.Expected, o.Actual, formatResult(o.Result)})
	}
	t.AppendFooter(table.Row{"", "", "", "Passed", fmt.Sprintf("%d/%d", result.PassedCount, result.Total)})
	t.Render()
}

func (r *tableReporter) ReportBatchStart(dir string, scripts int) {}

func (r *tableReporter) ReportScriptStart(name string) {}

func (r *tableReporter) ReportScriptResult(outcome ScriptOutcome) {}

func (r *tableReporter) ReportBatchResult(result BatchResult) {
	t := r.newWriter()
	t.SetTitle(result.Directory)
	t.AppendHeader(table.Row{"Script", "Exit", "Duration", "Result"})
	for _, o := range result.Outcomes {
		t.AppendRow(table.Row{o.ScriptName, o.ExitCode, o.Duration.Round(time.Millisecond), formatResult(o.Result)})
	}
	t.AppendFooter(table.Row{"", "", "Passed", fmt.Sprintf("%d/%d", result.PassedCount, result.Total)})
	t.Render()
}

func (r *tableReporter) newWriter() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func formatResult(result TestResult) string {
	switch result {
	case ResultPassed:
		return text.FgGreen.Sprint(string(result))
	case ResultTimeout:
		return text.FgYellow.Sprint(string(result))
	default:
		return text.FgRed.Sprint(string(result))
	}
}
