package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kingrea/metadspy/internal/builtins"
)

func newSymbolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List built-in references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSymbols(cmd.OutOrStdout())
		},
	}
}

func (a *app) runSymbols(out io.Writer) error {
	_, registry, err := a.resolver(nil)
	if err != nil {
		return err
	}
	for _, ref := range registry.References() {
		value, err := registry.Resolve(ref)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", ref, dimStyle.Render(describe(value)))
	}
	if a.settings.Symbols.FileReferences {
		fmt.Fprintf(out, "\nfile references enabled")
		if roots := a.settings.AllowDirs(); len(roots) > 0 {
			fmt.Fprintf(out, " under %v", roots)
		}
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, "\nfile references disabled")
	}
	return nil
}

func describe(value any) string {
	switch v := value.(type) {
	case *builtins.Tool:
		return "tool: " + v.Description
	case *builtins.LogCallback:
		return "callback: logs module start and end"
	case *builtins.GoInterpreter:
		return "interpreter: evaluates Go snippets"
	default:
		return fmt.Sprintf("%T", v)
	}
}
