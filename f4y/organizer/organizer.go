package organizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ZanzyTHEbar/file4you/f4y/config"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/common"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/gateway"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/services"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"
	"github.com/ZanzyTHEbar/file4you/f4y/ports"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"

	"github.com/ZanzyTHEbar/assert-lib"
)

// Organizer is the top-level entry point for the file4you engine. It wires
// the gateway, schema store, resolver, classifier and history ledger into an
// engine and exposes the batch operations the CLI runs.
type Organizer struct {
	// Core services
	engine     *services.OrganizerEngine
	store      *schema.Store
	gw         interfaces.FilesystemGateway
	resolver   interfaces.Resolver
	classifier interfaces.Classifier
	history    interfaces.HistoryRecorder

	// Utilities
	pathUtils     *common.PathUtils
	safetyUtils   *common.SafetyUtils
	assertHandler *assert.AssertHandler

	// System components
	config   *config.File4YouConfig
	terminal ports.Interactor
	variant  schema.Variant
}

// New creates an organizer for one schema variant. history may be nil when
// the move ledger is disabled; terminal is required for the keyword variant
// unless every run sets AutoClassify.
func New(cfg *config.File4YouConfig, variant schema.Variant, terminal ports.Interactor, history interfaces.HistoryRecorder) (*Organizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	// Each variant persists to its own file so the nested extension table
	// and the flat keyword table never decode each other's document.
	schemaPath := cfg.SchemaFile
	if variant == schema.VariantFlat {
		schemaPath = cfg.MappingFile
	}
	if schemaPath == "" {
		return nil, fmt.Errorf("schema file path must be configured for variant %q", variant)
	}

	gw := gateway.NewOSGateway(gateway.Config{
		IgnoreFile:    cfg.IgnoreFile,
		IncludeHidden: cfg.IncludeHidden,
	})
	store := schema.NewStore(schemaPath, variant)
	resolver := services.NewResolver(variant)

	var classifier interfaces.Classifier
	if terminal != nil {
		classifier = services.NewConsoleClassifier(terminal)
	} else {
		classifier = services.NewAutoClassifier()
	}

	return &Organizer{
		engine:        services.NewOrganizerEngine(gw, resolver, classifier, store, history),
		store:         store,
		gw:            gw,
		resolver:      resolver,
		classifier:    classifier,
		history:       history,
		pathUtils:     common.NewPathUtils(),
		safetyUtils:   common.NewSafetyUtils(),
		assertHandler: assert.NewAssertHandler(),
		config:        cfg,
		terminal:      terminal,
		variant:       variant,
	}, nil
}

// Organize loads and reconciles the schema, then runs one batch pass over
// the source directory. Per-item errors are logged and summarized in the
// result; only startup failures return an error.
func (o *Organizer) Organize(ctx context.Context, opts options.OrganizeOptions) (*types.RunResult, error) {
	if opts.SourceDir == "" {
		opts.SourceDir = o.config.WatchDir
	}
	if opts.SourceDir == "" {
		return nil, fmt.Errorf("source directory must be specified")
	}
	if opts.Conflict == "" {
		opts.Conflict = options.ConflictStrategy(o.config.ConflictPolicy)
	}

	// AutoClassify swaps the classifier for this run only; later runs keep
	// the organizer's own engine and prompt again.
	engine := o.engine
	if opts.AutoClassify {
		engine = services.NewOrganizerEngine(o.gw, o.resolver, services.NewAutoClassifier(), o.store, o.history)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	slog.Info("Organizing folder", "source", opts.SourceDir, "schema", o.store.Path())

	sch, err := o.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	o.assertHandler.Assert(ctx, sch.Variant == o.variant, "schema store returned a document for the wrong variant", "want", string(o.variant), "got", string(sch.Variant))

	result, err := engine.Run(ctx, sch, opts)
	if err != nil {
		return nil, fmt.Errorf("organize pass failed: %w", err)
	}
	return result, nil
}

// Preview runs a pass in dry-run mode: everything is resolved and reported,
// nothing on disk changes and no schema entry is persisted.
func (o *Organizer) Preview(ctx context.Context, opts options.OrganizeOptions) (*types.RunResult, error) {
	opts.DryRun = true
	return o.Organize(ctx, opts)
}

// Schema loads the current reconciled schema.
func (o *Organizer) Schema(ctx context.Context) (*schema.Schema, error) {
	return o.store.Load(ctx)
}

// Store returns the schema store.
func (o *Organizer) Store() *schema.Store {
	return o.store
}

// Gateway returns the filesystem gateway.
func (o *Organizer) Gateway() interfaces.FilesystemGateway {
	return o.gw
}

// ValidatePath validates that a path is safe and accessible.
func (o *Organizer) ValidatePath(path string) error {
	return o.pathUtils.ValidatePath(path)
}
