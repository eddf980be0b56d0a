package catalog

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"protoforge/prototype"
)

// Loader runs the decode → insert → resolve pipeline over a set of document
// sources and keeps the resulting registry. Reload re-reads every source for
// dev hot reload.
type Loader struct {
	table    *prototype.Table
	registry *Registry
	sources  []Source
	policy   CollisionPolicy
	strict   bool
	log      *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithSources sets the document sources read by Load and Reload.
func WithSources(sources ...Source) Option {
	return func(l *Loader) { l.sources = append([]Source(nil), sources...) }
}

// WithPolicy sets the collision policy applied by Load.
func WithPolicy(policy CollisionPolicy) Option {
	return func(l *Loader) { l.policy = policy }
}

// WithStrict makes any record error or unresolved reference fail the load.
// Tolerant mode (the default) returns them as diagnostics instead, which is
// what iterative content authoring wants.
func WithStrict(strict bool) Option {
	return func(l *Loader) { l.strict = strict }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

func NewLoader(table *prototype.Table, opts ...Option) *Loader {
	l := &Loader{
		table:    table,
		registry: NewRegistry(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is the convenience entry point: build file sources from the paths,
// construct a loader, and run the initial load.
func Load(table *prototype.Table, paths []string, opts ...Option) (*Loader, LoadReport, error) {
	opts = append([]Option{WithSources(SourcesFromPaths(paths)...)}, opts...)
	l := NewLoader(table, opts...)
	report, err := l.Load()
	return l, report, err
}

// Registry exposes the loader's record store.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// LoadReport summarizes one load batch.
type LoadReport struct {
	// Records is the number of records held by the registry after the batch.
	Records int
	// RecordErrors are per-record decode and duplicate errors. They never
	// block sibling records.
	RecordErrors []error
	// Diagnostics are unresolved or mismatched references reported by the
	// resolution pass. The host decides whether they are fatal.
	Diagnostics []error
}

// Err aggregates every collected error, or nil if the batch was clean.
func (rep LoadReport) Err() error {
	return errors.Join(errors.Join(rep.RecordErrors...), errors.Join(rep.Diagnostics...))
}

// Load parses every source, inserts the whole batch, and runs the resolution
// pass. Insertion happens only after all documents parse, so references may
// point forward across files regardless of file order. Sources that do not
// exist are skipped; any other read error aborts the batch.
func (l *Loader) Load() (LoadReport, error) {
	return l.load(l.policy)
}

// Reload re-reads every source into the existing registry, replacing records
// in place. Overwriting leaves previously bound references valid (they bind by
// identifier), but the fresh resolution pass run here is mandatory so that
// references into replaced or newly missing records are re-checked.
func (l *Loader) Reload() (LoadReport, error) {
	return l.load(Overwrite)
}

func (l *Loader) load(policy CollisionPolicy) (LoadReport, error) {
	var report LoadReport
	var batch []prototype.Prototype

	for _, src := range l.sources {
		data, err := src.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.log.Debug("prototype source missing, skipping", zap.String("path", src.Path()))
				continue
			}
			return report, fmt.Errorf("catalog: failed loading %s: %w", src.Path(), err)
		}
		records, errs := ParseDocument(l.table, src.Path(), data)
		for _, recordErr := range errs {
			l.log.Warn("prototype record rejected", zap.Error(recordErr))
		}
		report.RecordErrors = append(report.RecordErrors, errs...)
		batch = append(batch, records...)
	}

	report.RecordErrors = append(report.RecordErrors, l.registry.InsertBatch(batch, policy)...)
	report.Diagnostics = l.registry.Resolve()
	report.Records = l.registry.Len()

	for _, diag := range report.Diagnostics {
		l.log.Warn("unresolved prototype reference", zap.Error(diag))
	}
	l.log.Info("prototype catalog loaded",
		zap.Int("records", report.Records),
		zap.Int("recordErrors", len(report.RecordErrors)),
		zap.Int("unresolvedRefs", len(report.Diagnostics)),
		zap.Stringer("policy", policy),
	)

	if l.strict {
		if err := report.Err(); err != nil {
			return report, fmt.Errorf("catalog: strict load failed: %w", err)
		}
	}
	return report, nil
}
