package diro_installer

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

// PrintSummary prints a table of all installed files and the total size moved.
func PrintSummary(out io.Writer, report *Report, translator *Translator) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New(
		translator.Get("summary_file"),
		translator.Get("summary_mode"),
		translator.Get("summary_size"),
	)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt).WithWriter(out)
	for _, file := range report.Files {
		tbl.AddRow(file.Path, file.Mode.String(), humanize.Bytes(uint64(file.Size)))
	}
	tbl.Print()
	fmt.Fprintln(out, translator.GetVar("summary_moved", StringMap{"size": report.SizeString()}))
}
