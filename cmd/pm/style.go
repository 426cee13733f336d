package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// renderFields prints a label/value table, columns aligned to the
// widest label.
func renderFields(fields map[string]string, order []string) string {
	width := 0
	for _, k := range order {
		if len(k) > width {
			width = len(k)
		}
	}
	var b strings.Builder
	for _, k := range order {
		v, ok := fields[k]
		if !ok {
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, k)))
		b.WriteString("  ")
		b.WriteString(v)
		b.WriteString("\n")
	}
	return b.String()
}

// renderList prints a sorted list of logical paths, one per line.
func renderList(paths []string) string {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	var b strings.Builder
	for _, p := range sorted {
		b.WriteString(pathStyle.Render(p))
		b.WriteString("\n")
	}
	return b.String()
}

func printErr(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("error:"), err)
}
