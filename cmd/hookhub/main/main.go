package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/hookhub/cmd/hookhub"
	"github.com/arthur-debert/hookhub/pkg/ui"
)

func main() {
	rootCmd := hookhub.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		style := ui.PlainStyles().Fault.UnsetPaddingLeft()
		if ui.DetectFormat(os.Stderr) == ui.FormatTerminal {
			style = ui.NewStyles(lipgloss.NewRenderer(os.Stderr)).Fault.UnsetPaddingLeft()
		}
		fmt.Fprintln(os.Stderr, style.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
