// Command protod loads the prototype content, writes the schema artifact, and
// serves the authoring endpoints for editor tooling.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"protoforge/catalog"
	"protoforge/devserver"
	"protoforge/gamedata"
	"protoforge/prototype"
	"protoforge/schema"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a protod config file (yaml or json)")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg := catalog.DefaultConfig()
	if configPath != "" {
		cfg, err = catalog.LoadConfig(configPath)
		if err != nil {
			log.Fatal("failed to load config", zap.Error(err))
		}
	}
	policy, err := cfg.CollisionPolicy()
	if err != nil {
		log.Fatal("invalid collision policy", zap.Error(err))
	}

	table := prototype.NewTable()
	gamedata.MustRegister(table)

	if cfg.SchemaPath != "" {
		if err := schema.Write(cfg.SchemaPath, schema.Generate(table)); err != nil {
			log.Warn("schema artifact not written", zap.Error(err))
		} else {
			log.Info("schema artifact written", zap.String("path", cfg.SchemaPath))
		}
	}

	if cfg.Strict {
		validateDocuments(log, table, cfg.Paths)
	}

	loader := catalog.NewLoader(table,
		catalog.WithSources(catalog.SourcesFromPaths(cfg.Paths)...),
		catalog.WithPolicy(policy),
		catalog.WithStrict(cfg.Strict),
		catalog.WithLogger(log),
	)
	server := devserver.New(table, loader, log)

	if _, err := loader.Load(); err != nil {
		log.Fatal("initial content load failed", zap.Error(err))
	}

	if err := server.ListenAndServe(cfg.Listen); err != nil {
		log.Fatal("dev server stopped", zap.Error(err))
	}
}

// validateDocuments checks every readable document against the composite
// schema before parsing, so strict runs fail with authoring-level diagnostics.
func validateDocuments(log *zap.Logger, table *prototype.Table, paths []string) {
	validator, err := schema.NewValidator(schema.Generate(table))
	if err != nil {
		log.Fatal("failed to compile schema validator", zap.Error(err))
	}
	for _, src := range catalog.SourcesFromPaths(paths) {
		data, err := src.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Fatal("failed reading document", zap.String("path", src.Path()), zap.Error(err))
		}
		if err := validator.Validate(data); err != nil {
			log.Fatal("document rejected by schema", zap.String("path", src.Path()), zap.Error(err))
		}
	}
}
