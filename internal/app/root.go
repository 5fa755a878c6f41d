package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyballingall/json-schema-validator/internal/config"
	"github.com/andyballingall/json-schema-validator/internal/fs"
	"github.com/andyballingall/json-schema-validator/internal/validator"
)

// Version is the current version of jsv, set at build time.
var Version = "dev"

// BaseDirEnvVar names the environment variable which, when set, provides the
// base directory for relative $ref resolution.
const BaseDirEnvVar = "JSV_SCHEMA_BASE_DIR"

func newCompiler() validator.Compiler {
	return validator.NewCompiler(nil)
}

var LongDescription = `
jsv validates JSON documents against JSON Schemas (drafts 3 and 4).
It resolves $ref pointers within and across schema files and reports
failures as structured, machine-readable error records.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool

	rootCmd := &cobra.Command{
		Use:           "jsv",
		Short:         "Validate JSON documents against JSON Schemas",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help and completion commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			logger, _, err := setupLogger(stderr, ll)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			// 2. Build Dependencies
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.New(cwd, newCompiler())
			if err != nil {
				return fmt.Errorf("configuration could not be loaded: %w", err)
			}
			if dir := envProvider.Get(BaseDirEnvVar); dir != "" && cfg.SchemaBaseDir == "" {
				cfg.SchemaBaseDir = dir
			}
			if cfg.SchemaBaseDir != "" {
				if cp, cpErr := fs.CanonicalPath(cfg.SchemaBaseDir); cpErr == nil {
					cfg.SchemaBaseDir = cp
				}
			}

			// 3. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, cfg, cmd.OutOrStdout())
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")

	// Subcommands
	rootCmd.AddCommand(NewValidateCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
