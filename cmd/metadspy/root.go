package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kingrea/metadspy/internal/builtins"
	"github.com/kingrea/metadspy/internal/config"
	"github.com/kingrea/metadspy/internal/logging"
	"github.com/kingrea/metadspy/internal/metrics"
	"github.com/kingrea/metadspy/runtime"
	"github.com/kingrea/metadspy/spec"
	"github.com/kingrea/metadspy/symbol"
)

// app holds global flags and the state PersistentPreRunE prepares.
type app struct {
	cfgFile    string
	logLevel   string
	allowDirs  []string
	noFileRefs bool
	projectDir string

	settings config.Settings
	logger   *logging.Logger
}

// execute runs the command tree for args and releases the logger on every
// path, including failed commands.
func execute(a *app, args []string, out, errOut io.Writer) error {
	defer a.close()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadspy",
		Short: "Declarative agent module specs",
		Long: `metadspy turns YAML module documents into runtime modules.

Each module names a strategy (Predict, ReAct, CodeAct, ChainOfThought), the
signature it implements, and references to tools, callbacks and interpreters.

  metadspy validate agents.yaml   # Check documents
  metadspy build agents.yaml      # Dry-run every module
  metadspy inspect agents.yaml    # Browse modules interactively
  metadspy symbols                # List built-in references`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "settings file (default ./"+config.FileName+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringArrayVar(&a.allowDirs, "allow-dir", nil, "directory file references may load from (repeatable)")
	flags.BoolVar(&a.noFileRefs, "no-file-refs", false, "reject <path>::<attribute> references")

	cmd.AddCommand(
		newValidateCmd(a),
		newBuildCmd(a),
		newInspectCmd(a),
		newSymbolsCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		a.projectDir = cwd
	}
	settings, err := config.Load(a.projectDir, a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.Log.Level = a.logLevel
	}
	if flags.Changed("allow-dir") {
		settings.Symbols.AllowDirs = a.allowDirs
	}
	if flags.Changed("no-file-refs") {
		settings.Symbols.FileReferences = !a.noFileRefs
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	a.settings = settings

	opts := logging.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Out:    cmd.ErrOrStderr(),
	}
	if settings.Log.File {
		opts.ProjectDir = a.projectDir
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug().
		Str("settings", settings.Source).
		Bool("file_refs", settings.Symbols.FileReferences).
		Strs("allow_dirs", settings.AllowDirs()).
		Msg("settings loaded")
	return nil
}

func (a *app) close() {
	if err := a.logger.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: close log file:", err)
	}
}

func (a *app) log() zerolog.Logger {
	if a.logger == nil {
		return zerolog.Nop()
	}
	return a.logger.Logger
}

// resolver assembles the reference resolver from settings: built-ins for
// module references, the file loader for file references when enabled.
func (a *app) resolver(collector *metrics.Collector) (symbol.Resolver, *symbol.Registry, error) {
	registry, err := builtins.NewRegistry(a.log())
	if err != nil {
		return nil, nil, err
	}
	var files symbol.Resolver
	if a.settings.Symbols.FileReferences {
		files = symbol.NewFileLoader(symbol.WithAllowedRoots(a.settings.AllowDirs()...))
	}
	var resolver symbol.Resolver = symbol.NewRouter(registry, files)
	if collector != nil {
		resolver = symbol.Observe(resolver, collector.ResolutionHook())
	}
	if a.settings.Symbols.Cache {
		resolver = symbol.NewCache(resolver)
	}
	return resolver, registry, nil
}

// builder returns a Builder backed by the dry-run runtime.
func (a *app) builder(collector *metrics.Collector) (*spec.Builder, error) {
	resolver, _, err := a.resolver(collector)
	if err != nil {
		return nil, err
	}
	opts := []spec.BuilderOption{spec.WithLogger(a.log())}
	if collector != nil {
		opts = append(opts, spec.WithObserver(collector))
	}
	env := spec.Env{Resolver: resolver, Runtime: runtime.Describer{}}
	return spec.NewBuilder(env, opts...), nil
}
