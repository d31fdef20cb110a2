package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"schemacore/pkg/catalog"
	"schemacore/pkg/catalog/catalogio"
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/config"
	"schemacore/pkg/emission"
	"schemacore/pkg/logging"
	"schemacore/pkg/metrics"
	"schemacore/pkg/primitives"
	"schemacore/pkg/registry"
	"schemacore/pkg/statements"
)

// passSettings is the merged result of configuration and flags.
type passSettings struct {
	mode              primitives.EmitMode
	libraries         []string
	objects           []string
	includeSystem     bool
	includeGenerated  bool
	includeDependents bool
	withDependencies  bool
	parallelism       int
	metricsFile       string
}

// passFunc runs one emission pass over its own context.
type passFunc func(ec *emission.EmissionContext) (*statements.BlockStatement, error)

func loadCatalog(path string) (*object.Catalog, error) {
	return catalogio.NewLoader(catalog.DefaultRegistries()).LoadFile(path)
}

// requestedIDs resolves object names to ids in c.
func requestedIDs(c *object.Catalog, names []string) ([]primitives.ObjectID, error) {
	ids := make([]primitives.ObjectID, 0, len(names))
	for _, name := range names {
		obj, err := c.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("requested object %s: %w", name, err)
		}
		ids = append(ids, obj.ID())
	}
	return ids, nil
}

// distinctLibraries drops repeated library names, ignoring case. One pass
// with no library filter runs when none are given.
func distinctLibraries(libraries []string) []string {
	if len(libraries) == 0 {
		return []string{""}
	}
	seen := make(map[string]bool, len(libraries))
	result := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		key := strings.ToLower(lib)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, lib)
	}
	return result
}

// runPasses runs fn once per library in parallel. Every pass has its own
// session and emission context; libraries select disjoint objects, so the
// passes never emit the same object. Blocks are returned in library order.
func runPasses(ctx context.Context, s passSettings, c *object.Catalog, m *metrics.EmissionMetrics, fn passFunc) ([]*statements.BlockStatement, error) {
	ids, err := requestedIDs(c, s.objects)
	if err != nil {
		return nil, err
	}
	libraries := distinctLibraries(s.libraries)
	blocks := make([]*statements.BlockStatement, len(libraries))
	base := registry.NewSessionContext(primitives.SessionID(1), c, "schemactl")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, lib := range libraries {
		i, lib := i, lib
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := logging.WithLibrary(lib)
			start := time.Now()

			session := base.WithCatalog(object.NewCatalog())
			ec := emission.NewEmissionContext(session, emission.Options{
				Mode:              s.mode,
				RequestedObjects:  ids,
				LibraryName:       lib,
				IncludeSystem:     s.includeSystem,
				IncludeGenerated:  s.includeGenerated,
				IncludeDependents: s.includeDependents,
			}).WithMetrics(m)

			block, err := fn(ec)
			if err != nil {
				logging.WithError(err).Error("pass failed", "library", lib)
				return fmt.Errorf("library %q: %w", lib, err)
			}
			blocks[i] = block
			log.Info("pass finished", "statements", block.Len(), "elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// newMetrics creates the counters of one invocation on their own registry.
func newMetrics() (*metrics.EmissionMetrics, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	m := metrics.NewEmissionMetrics()
	if err := m.Register(reg); err != nil {
		return nil, nil, err
	}
	return m, reg, nil
}

func writeMetrics(s passSettings, reg *prometheus.Registry) error {
	if s.metricsFile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.metricsFile, reg)
}

func writeBlocks(w io.Writer, blocks []*statements.BlockStatement) error {
	for _, b := range blocks {
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// mergeBlocks joins pass results into one script.
func mergeBlocks(blocks []*statements.BlockStatement) *statements.BlockStatement {
	merged := statements.NewBlockStatement()
	for _, b := range blocks {
		merged.Add(b)
	}
	return merged
}

func settingsFromConfig(cfg *config.Config) passSettings {
	return passSettings{
		mode:              cfg.EmitMode(),
		libraries:         cfg.Emission.Libraries,
		objects:           cfg.Emission.Requested,
		includeSystem:     cfg.Emission.IncludeSystem,
		includeGenerated:  cfg.Emission.IncludeGenerated,
		includeDependents: cfg.Emission.IncludeDependents,
		parallelism:       cfg.Emission.Parallelism,
		metricsFile:       cfg.Metrics.TextfilePath,
	}
}
