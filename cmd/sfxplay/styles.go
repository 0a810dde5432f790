package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#5FAFD7")
	okColor     = lipgloss.Color("#4A9B4A")
	failColor   = lipgloss.Color("#D75F5F")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(10)
	valueStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(okColor)
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(failColor)
)

func field(label string, value any) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(fmt.Sprint(value))
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, errStyle.Render("Error:")+" "+msg)
}
