package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/metadspy/internal/tui"
	"github.com/kingrea/metadspy/spec"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse the modules of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.inspector(args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run inspector: %w", err)
			}
			return nil
		},
	}
}

func (a *app) inspector(path string) (*tui.Inspector, error) {
	doc, err := spec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	builder, err := a.builder(nil)
	if err != nil {
		return nil, err
	}
	return tui.NewInspector(doc.Path, tui.Inspect(doc.Document, builder)), nil
}
