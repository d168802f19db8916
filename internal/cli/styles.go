package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// PrintError writes err to w in the error style.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
}

func printBanner(w io.Writer) {
	_, _ = fmt.Fprintln(w, bannerStyle.Render("backforth "+Version))
	_, _ = fmt.Fprintln(w, hintStyle.Render("type bye or press Ctrl+D to exit"))
	_, _ = fmt.Fprintln(w)
}
