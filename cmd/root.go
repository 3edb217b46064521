// Package cmd implements the orgp CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tbinetruy/OrgModeParser/internal/config"
	"github.com/tbinetruy/OrgModeParser/internal/logger"
	"github.com/tbinetruy/OrgModeParser/org"
)

// loadConfig is swapped out by tests.
var loadConfig = config.Load

// DocumentReader reads org documents for the commands.
type DocumentReader interface {
	ReadDocument(ctx context.Context, path string) ([]byte, error)
}

// NewRootCmd creates the root orgp command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orgp",
		Short:         "orgp - parse org outline documents",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.PersistentFlags().Bool("verbose", false, "Log debug output to stderr")

	reader := newDefaultDocumentReader()
	root.AddCommand(NewParseCmd(reader))
	root.AddCommand(NewOutlineCmd(reader))
	root.AddCommand(NewAttrsCmd(reader))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// settings loads the config file and builds the command's logger.
// The --verbose flag forces debug logging.
func settings(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	lg := logger.NewWithLevel(cmd.ErrOrStderr(), level)
	lg.ConfigLoaded(config.ConfigPath(), cfg.Format, cfg.Timezone)
	return cfg, lg, nil
}

// parseDocument reads and parses the document at path.
func parseDocument(cmd *cobra.Command, reader DocumentReader, path string, cfg *config.Config, lg *logger.Logger) (*org.Result, error) {
	ctx := cmd.Context()

	src, err := reader.ReadDocument(ctx, path)
	if err != nil {
		lg.FileError(path, err)
		return nil, fmt.Errorf("reading document: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	lg.ParseStarted(path, len(src))
	start := time.Now()
	p := org.New(org.WithLocation(loc), org.WithLogger(lg.Logger))
	res := p.Parse(ctx, src, path)

	n := 0
	res.Root.Walk(func(*org.Element) bool { n++; return true })
	lg.ParseCompleted(path, n-1, len(res.Diagnostics), time.Since(start))
	return res, nil
}

// fileDocumentReader implements DocumentReader using OS file I/O.
type fileDocumentReader struct{}

func newDefaultDocumentReader() *fileDocumentReader {
	return &fileDocumentReader{}
}

func (r *fileDocumentReader) ReadDocument(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}
