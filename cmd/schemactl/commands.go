package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"schemacore/pkg/catalog"
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/emission"
	"schemacore/pkg/logging"
	"schemacore/pkg/primitives"
	"schemacore/pkg/signature"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
	"schemacore/pkg/ui"
)

// passFlags are the emission flags shared by the script commands.
type passFlags struct {
	mode              string
	libraries         []string
	objects           []string
	includeSystem     bool
	includeGenerated  bool
	includeDependents bool
	withDependencies  bool
	metricsFile       string
}

func (f *passFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.mode, "mode", "", "emit mode (copy, storage, remote)")
	flags.StringSliceVar(&f.libraries, "library", nil, "emit only this library; repeat to run one pass per library")
	flags.StringSliceVar(&f.objects, "object", nil, "emit only the named object; repeatable")
	flags.BoolVar(&f.includeSystem, "include-system", false, "include system objects")
	flags.BoolVar(&f.includeGenerated, "include-generated", false, "include generated objects")
	flags.BoolVar(&f.includeDependents, "include-dependents", false, "include objects depending on requested objects")
	flags.BoolVar(&f.withDependencies, "with-dependencies", false, "emit requested objects together with everything they depend on")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "write emission metrics in text format to this file")
}

// settings overlays the flags that were set on the configured defaults.
func (f *passFlags) settings(cmd *cobra.Command, a *app) (passSettings, error) {
	s := settingsFromConfig(a.cfg)
	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := primitives.ParseEmitMode(f.mode)
		if err != nil {
			return s, err
		}
		s.mode = mode
	}
	if flags.Changed("library") {
		s.libraries = f.libraries
	}
	if flags.Changed("object") {
		s.objects = f.objects
	}
	if flags.Changed("include-system") {
		s.includeSystem = f.includeSystem
	}
	if flags.Changed("include-generated") {
		s.includeGenerated = f.includeGenerated
	}
	if flags.Changed("include-dependents") {
		s.includeDependents = f.includeDependents
	}
	if flags.Changed("metrics-file") {
		s.metricsFile = f.metricsFile
	}
	s.withDependencies = f.withDependencies
	if s.withDependencies && len(s.objects) == 0 {
		logging.Warn("--with-dependencies has no effect without --object")
	}
	return s, nil
}

// emitPass writes create statements. With dependencies requested, the
// closure of the requested objects is copied out first and emitted whole.
func emitPass(s passSettings, c *object.Catalog) passFunc {
	return func(ec *emission.EmissionContext) (*statements.BlockStatement, error) {
		if !s.withDependencies || len(s.objects) == 0 {
			return ec.EmitCatalog(c)
		}
		closure, err := ec.IncludeRequested(c)
		if err != nil {
			return nil, err
		}
		return ec.EmitCatalog(closure)
	}
}

// runScript loads the catalog, runs fn per library and writes the script.
func runScript(cmd *cobra.Command, a *app, f *passFlags, path string, fn func(passSettings, *object.Catalog) passFunc) error {
	s, err := f.settings(cmd, a)
	if err != nil {
		return err
	}
	c, err := loadCatalog(path)
	if err != nil {
		return err
	}
	m, reg, err := newMetrics()
	if err != nil {
		return err
	}
	blocks, err := runPasses(cmd.Context(), s, c, m, fn(s, c))
	if err != nil {
		return err
	}
	if err := writeBlocks(cmd.OutOrStdout(), blocks); err != nil {
		return err
	}
	logging.Info("script written", "catalog", path, "passes", len(blocks), "mode", s.mode.String())
	if err := writeMetrics(s, reg); err != nil {
		logging.Error("writing metrics failed", "path", s.metricsFile, "error", err)
		return err
	}
	return nil
}

func newEmitCommand(a *app) *cobra.Command {
	f := &passFlags{}
	cmd := &cobra.Command{
		Use:   "emit <catalog.yaml>",
		Short: "Emit the create script of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, a, f, args[0], emitPass)
		},
	}
	f.bind(cmd)
	return cmd
}

func newDropCommand(a *app) *cobra.Command {
	f := &passFlags{}
	cmd := &cobra.Command{
		Use:   "drop <catalog.yaml>",
		Short: "Emit the drop script of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, a, f, args[0], func(_ passSettings, c *object.Catalog) passFunc {
				return func(ec *emission.EmissionContext) (*statements.BlockStatement, error) {
					return ec.EmitDropCatalog(c)
				}
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func newDiffCommand(a *app) *cobra.Command {
	f := &passFlags{}
	cmd := &cobra.Command{
		Use:   "diff <old.yaml> <new.yaml>",
		Short: "Emit the script that turns the old catalog into the new one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			// Requested objects are resolved against the new catalog.
			return runScript(cmd, a, f, args[1], func(_ passSettings, c *object.Catalog) passFunc {
				return func(ec *emission.EmissionContext) (*statements.BlockStatement, error) {
					return ec.EmitChanges(old, c)
				}
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func newViewCommand(a *app) *cobra.Command {
	f := &passFlags{}
	cmd := &cobra.Command{
		Use:   "view <catalog.yaml>",
		Short: "Browse the create script of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.settings(cmd, a)
			if err != nil {
				return err
			}
			c, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			m, _, err := newMetrics()
			if err != nil {
				return err
			}
			source := func(mode primitives.EmitMode) (*statements.BlockStatement, error) {
				pass := s
				pass.mode = mode
				blocks, err := runPasses(cmd.Context(), pass, c, m, emitPass(pass, c))
				if err != nil {
					return nil, err
				}
				return mergeBlocks(blocks), nil
			}
			return ui.Run(filepath.Base(args[0]), source, s.mode)
		},
	}
	f.bind(cmd)
	return cmd
}

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <catalog.yaml> <operator> [type...]",
		Short: "Show which overload of an operator accepts the given argument types",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			operators, err := catalog.BuildOperatorMap(c, a.cfg.Emission.OperatorCacheSize)
			if err != nil {
				return err
			}

			argTypes := make([]types.DataType, 0, len(args)-2)
			for _, name := range args[2:] {
				obj, err := c.Resolve(name)
				if err != nil {
					return err
				}
				t, ok := obj.(*types.ScalarType)
				if !ok {
					return fmt.Errorf("%s is not a scalar type", name)
				}
				argTypes = append(argTypes, t)
			}

			op, err := operators.Resolve(object.EnsureUnrooted(args[1]), signature.Of(argTypes...))
			if err != nil {
				return err
			}
			stmt, err := op.EmitStatement(primitives.ForCopy)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(stmt.String()))
			return err
		},
	}
}
