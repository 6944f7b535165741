package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kingrea/metadspy/internal/metrics"
	"github.com/kingrea/metadspy/internal/tui"
	"github.com/kingrea/metadspy/runtime"
	"github.com/kingrea/metadspy/spec"
)

func newBuildCmd(a *app) *cobra.Command {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   "build FILE",
		Short: "Build every module of a document against the dry-run runtime",
		Long: `Resolve references and assemble constructor keywords for every module,
without running anything. Stops at the first module that fails.

Examples:
  metadspy build agents.yaml
  metadspy build agents.yaml --metrics-file build.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd.OutOrStdout(), args[0], metricsFile)
		},
	}
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	return cmd
}

func (a *app) runBuild(out io.Writer, path, metricsFile string) error {
	doc, err := spec.LoadFile(path)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(reg)
	builder, err := a.builder(collector)
	if err != nil {
		return err
	}

	built, buildErr := builder.BuildAll(doc.Document, spec.NamedSignatures)
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if buildErr != nil {
		fmt.Fprintf(out, "  %s %s\n", crossMark, doc.Path)
		return buildErr
	}

	fmt.Fprintf(out, "  %s %s\n", checkMark, doc.Path)
	for _, b := range built {
		fmt.Fprintf(out, "      %s %s\n", b.Name, dimStyle.Render(string(b.Kind)))
		desc, ok := b.Module.(*runtime.Descriptor)
		if !ok {
			continue
		}
		for _, name := range desc.Kwargs.Names() {
			value, _ := desc.Kwargs.Get(name)
			fmt.Fprintf(out, "        %s = %s\n", name, tui.FormatValue(value))
		}
		if desc.Kwargs.Len() == 0 {
			fmt.Fprintf(out, "        %s\n", dimStyle.Render("(no keywords)"))
		}
	}
	return nil
}
