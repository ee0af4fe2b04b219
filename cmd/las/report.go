package main

import (
	"io"

	"github.com/yacobolo/las/internal/report"
)

func newReporter(w io.Writer) *report.Reporter {
	return report.NewReporter(w, report.Config{
		UseColors:        getBoolWithFallback("color", false),
		PrintIssuedLines: getBoolWithFallback("check.print-lines", true),
		PrintLinterName:  true,
	})
}
