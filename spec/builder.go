package spec

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kingrea/metadspy/runtime"
)

// Observer is notified after every build attempt.
type Observer interface {
	BuildFinished(kind Kind, duration time.Duration, err error)
}

// SignatureSource maps a spec's "use" reference onto a signature value.
type SignatureSource func(use string) (runtime.Signature, error)

// NamedSignatures passes "use" through as a runtime.NamedSignature.
func NamedSignatures(use string) (runtime.Signature, error) {
	return runtime.NamedSignature(use), nil
}

// Built is one module produced by BuildAll.
type Built struct {
	Name   string
	Kind   Kind
	Module runtime.Module
}

// Builder builds specs against a fixed Env, logging and reporting each build.
type Builder struct {
	env      Env
	logger   zerolog.Logger
	observer Observer
	now      func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for build events.
func WithLogger(logger zerolog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// WithObserver registers an observer for build outcomes.
func WithObserver(observer Observer) BuilderOption {
	return func(b *Builder) { b.observer = observer }
}

// NewBuilder returns a Builder over env.
func NewBuilder(env Env, opts ...BuilderOption) *Builder {
	b := &Builder{env: env, logger: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds a single spec.
func (b *Builder) Build(spec ModuleSpec, sig runtime.Signature) (runtime.Module, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec: build: spec is nil")
	}
	info := spec.Info()
	log := b.logger.With().
		Str("build_id", uuid.NewString()).
		Str("module", info.Name).
		Str("kind", string(spec.Kind())).
		Logger()
	log.Debug().Str("use", info.Use).Msg("building module")

	start := b.now()
	mod, err := spec.Build(sig, b.env)
	elapsed := b.now().Sub(start)
	if b.observer != nil {
		b.observer.BuildFinished(spec.Kind(), elapsed, err)
	}
	if err != nil {
		log.Error().Err(err).Dur("duration", elapsed).Msg("module build failed")
		return nil, err
	}
	log.Info().Dur("duration", elapsed).Msg("module built")
	return mod, nil
}

// BuildAll builds every module of doc in order. It stops at the first
// failure and returns no modules in that case.
func (b *Builder) BuildAll(doc Document, signatures SignatureSource) ([]Built, error) {
	if signatures == nil {
		signatures = NamedSignatures
	}
	built := make([]Built, 0, len(doc.Modules))
	for _, mod := range doc.Modules {
		info := mod.Info()
		sig, err := signatures(info.Use)
		if err != nil {
			return nil, fmt.Errorf("spec: module %s: signature %s: %w", info.Name, info.Use, err)
		}
		instance, err := b.Build(mod, sig)
		if err != nil {
			return nil, err
		}
		built = append(built, Built{Name: info.Name, Kind: mod.Kind(), Module: instance})
	}
	return built, nil
}
