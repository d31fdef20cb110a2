package main

import (
	"github.com/spf13/cobra"

	"schemacore/pkg/config"
	"schemacore/pkg/logging"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "schemactl",
		Short:         "Emit data definition scripts from catalog definition files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newEmitCommand(a),
		newDropCommand(a),
		newDiffCommand(a),
		newViewCommand(a),
		newResolveCommand(a),
	)
	return root
}

// setup loads the configuration and initializes logging. Flags given on
// the command line win over file values.
func (a *app) setup() error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		level, err := logging.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		cfg.Logging.Level = level
	}
	a.cfg = cfg

	_ = logging.Close()
	return logging.Init(cfg.Logging)
}
