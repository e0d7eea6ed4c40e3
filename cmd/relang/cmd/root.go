// Package cmd implements the command line interface for the
// application.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/whit3rabbit/relang/internal/config"
	"github.com/whit3rabbit/relang/pkg/api"
)

// Version is the released version of the tool.
const Version = "0.1.0"

var (
	cfgFile string         // Variable to hold the config file path from the flag
	cfg     *config.Config // Global variable to hold the loaded configuration

	// Flag variables mapped to config fields for override
	silentMode bool  // -> cfg.Silent
	debugMode  bool  // -> cfg.Debug
	printTree  bool  // -> cfg.PrintTree
	countOnly  bool  // -> cfg.CountOnly
	offset     int64 // -> cfg.Offset
	limit      int64 // -> cfg.Limit
	bufferSize int   // -> cfg.BufferSize
)

// rootCmd generates words for every pattern given as an argument.
var rootCmd = &cobra.Command{
	Use:     "relang [flags] <pattern>...",
	Short:   "Enumerate the words of a regular language.",
	Version: Version,
	Long: `relang treats each argument as a regular-expression pattern and
prints, in a fixed total order, every string of the language the
pattern describes. The sequence may be infinite; use --limit (and
--offset) to take a window of it.`,
	Args: cobra.MinimumNArgs(1),
	// PersistentPreRunE loads configuration before any subcommand.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			loadedCfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			cfg = loadedCfg
			applyFlagOverrides(cfg, cmd)
		}
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, pattern := range args {
			if err := runPattern(cmd.OutOrStdout(), cfg, pattern); err != nil {
				return err
			}
		}
		return nil
	},
}

// applyFlagOverrides applies command-line flag values to the config
// struct, but only when the flag was explicitly set by the user.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("silent") {
		cfg.Silent = silentMode
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	if cmd.Flags().Changed("print-tree") {
		cfg.PrintTree = printTree
	}
	if cmd.Flags().Changed("count-only") {
		cfg.CountOnly = countOnly
	}
	if cmd.Flags().Changed("offset") {
		cfg.Offset = offset
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = limit
	}
	if cmd.Flags().Changed("buffer-size") {
		cfg.BufferSize = bufferSize
	}
}

// runPattern compiles one pattern and drives the enumeration loop.
func runPattern(out io.Writer, cfg *config.Config, pattern string) error {
	g, err := api.New(pattern, api.Options{
		Offset:     cfg.Offset,
		Count:      cfg.Limit,
		BufferSize: cfg.BufferSize,
	})
	if err != nil {
		return err
	}

	if cfg.PrintTree {
		g.FprintTree(out)
	}

	var emitted int64
	for {
		if cfg.Debug {
			g.FprintState(out)
		}
		word, ok := g.Next()
		if !ok {
			break
		}
		if !cfg.CountOnly {
			fmt.Fprintln(out, word)
		}
		emitted++
	}
	if cfg.CountOnly {
		fmt.Fprintln(out, emitted)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error; just exit non-zero.
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./relang.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version and exit")

	rootCmd.PersistentFlags().BoolVarP(&silentMode, "silent", "s", false, "Suppress informational output (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Print iterator state before each word (overrides config)")
	rootCmd.Flags().BoolVarP(&printTree, "print-tree", "p", false, "Print the parsed pattern before enumerating (overrides config)")
	rootCmd.Flags().BoolVarP(&countOnly, "count-only", "c", false, "Suppress words, print the total count at the end (overrides config)")
	rootCmd.Flags().Int64VarP(&offset, "offset", "o", 0, "Skip this many words from the beginning (overrides config)")
	rootCmd.Flags().Int64VarP(&limit, "limit", "n", 0, "Stop after this many words, 0 for unlimited (overrides config)")
	rootCmd.Flags().IntVarP(&bufferSize, "buffer-size", "b", 1024, "Initial word buffer size in bytes (overrides config)")

	rootCmd.AddCommand(inspectCmd)
}
