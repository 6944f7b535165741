package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/metadspy/spec"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE|DIR...",
		Short: "Validate module documents",
		Long: `Decode and validate module documents without resolving references.

Directories are scanned for *.yaml and *.yml files.

Examples:
  metadspy validate agents.yaml
  metadspy validate specs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) runValidate(out io.Writer, paths []string) error {
	log := a.log()
	total, failed := 0, 0
	for _, path := range paths {
		docs, err := loadDocuments(path)
		if err != nil {
			total++
			failed++
			fmt.Fprintf(out, "  %s %s\n", crossMark, path)
			fmt.Fprintf(out, "      %v\n", err)
			log.Debug().Err(err).Str("path", path).Msg("document rejected")
			continue
		}
		for _, doc := range docs {
			total++
			fmt.Fprintf(out, "  %s %s\n", checkMark, doc.Path)
			for _, mod := range doc.Document.Modules {
				info := mod.Info()
				fmt.Fprintf(out, "      %s %s %s\n", info.Name, dimStyle.Render(string(mod.Kind())), dimStyle.Render(info.Use))
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("validation failed: %d of %d documents invalid", failed, total)
	}
	return nil
}

// loadDocuments loads path as a single document or, for a directory, every
// document inside it.
func loadDocuments(path string) ([]spec.DocumentFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return spec.LoadDir(path)
	}
	doc, err := spec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []spec.DocumentFile{doc}, nil
}
