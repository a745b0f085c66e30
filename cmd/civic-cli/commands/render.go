package commands

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	return t
}

func orBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDistrict(d *int) string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(*d)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
