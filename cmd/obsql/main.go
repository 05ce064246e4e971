// obsql parses MySQL and OceanBase DML statements and prints the syntax tree.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sqlc-dev/obsql/internal/config"
	"github.com/sqlc-dev/obsql/internal/logger"
)

var (
	version   = "0.1.0"
	buildDate = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries the settings resolved by the root command to its subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "obsql",
		Short: "obsql - MySQL and OceanBase DML parser",
		Long: `obsql parses SELECT, INSERT, REPLACE and UPDATE statements in the
MySQL or OceanBase dialect and prints the result.

Parse a statement read from stdin:
  echo "SELECT a FROM t WHERE b = ?" | obsql parse

Parse files and print them back as SQL:
  obsql parse --output sql query1.sql query2.sql`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	flags.StringP("dialect", "d", "oceanbase", "SQL dialect: mysql or oceanbase")
	flags.StringP("output", "o", "json", "output format: json, yaml, sql or tree")
	flags.Bool("normalize", true, "strip comments and fold whitespace before parsing")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	_ = a.v.BindPFlag("dialect", flags.Lookup("dialect"))
	_ = a.v.BindPFlag("output", flags.Lookup("output"))
	_ = a.v.BindPFlag("normalize", flags.Lookup("normalize"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newParseCmd(a),
		newTokenizeCmd(a),
		newKeywordsCmd(a),
		newInitConfigCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "obsql %s (built %s)\n", version, buildDate)
			},
		},
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if _, err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}); err != nil {
		return err
	}
	a.cfg = cfg
	logger.L().Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("dialect", cfg.Dialect),
		zap.String("output", cfg.Output),
		zap.Bool("normalize", cfg.Normalize),
	)
	return nil
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [file]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "obsql.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
			return nil
		},
	}
}
