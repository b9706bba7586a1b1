// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"fsprobe/internal/collect"
	"fsprobe/internal/config"
	"fsprobe/internal/fsys"
	"fsprobe/internal/logging"
	"fsprobe/internal/race"
	"fsprobe/internal/repo"
	"fsprobe/internal/snapshot"
)

// ResolveDataDir returns the data directory for logs and snapshots.
// If configDir is specified, uses that; otherwise uses ~/.config/fsprobe.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "fsprobe")
	}
	return filepath.Join(home, ".config", "fsprobe")
}

// BuildApp creates and configures the CLI application with all commands.
func BuildApp(version, configDir string, verbose bool) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "detect",
		Summary: "Print the enclosing git repository's root, branch, and head",
		Usage:   "Usage: fsprobe detect [dir]",
		Run: func(args []string) error {
			return runDetect(configDir, verbose, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "collect",
		Summary: "Collect the textual contents of a directory tree as JSON",
		Usage:   "Usage: fsprobe collect <path> [--ext <suffix>] [--save]",
		Run: func(args []string) error {
			return runCollect(configDir, verbose, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "first",
		Summary: "Print the first readable file among the given candidates",
		Usage:   "Usage: fsprobe first <path> [<path>...]",
		Run: func(args []string) error {
			return runFirst(configDir, verbose, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: fsprobe version",
		Run: func(args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	return app
}

// shell bundles the pieces every filesystem command needs: loaded config
// and an initialized log manager.
type shell struct {
	cfg     config.Config
	logs    *logging.Manager
	dataDir string
}

func newShell(configDir string, verbose bool) (*shell, error) {
	var cfg config.Config
	var err error
	if configDir != "" {
		cfg, err = config.LoadFromDir(configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	dataDir := ResolveDataDir(configDir)

	logCfg := logging.Config{
		FilePath:   filepath.Join(dataDir, "fsprobe.log"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
	}
	if verbose {
		logCfg.Console = os.Stderr
		logCfg.Level = "debug"
	}

	logs, err := logging.NewManager(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return &shell{cfg: cfg, logs: logs, dataDir: dataDir}, nil
}

func (s *shell) close() {
	_ = s.logs.Close()
}

// fail prints err and exits non-zero. Command handlers never return their
// errors to the dispatcher.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func runDetect(configDir string, verbose bool, args []string) error {
	startDir := "."
	if len(args) > 0 {
		startDir = args[0]
	}

	sh, err := newShell(configDir, verbose)
	if err != nil {
		fail(err)
	}
	defer sh.close()

	logger := sh.logs.For("cli.detect")
	logger.Debug("detecting repository", "start_dir", startDir)

	meta, err := repo.Detect(context.Background(), fsys.OS(), startDir)
	if err != nil {
		logger.Error("detection failed", "error", err)
		fail(err)
	}

	logger.Info("repository detected", "root", meta.Root, "branch", meta.Branch)
	return PrintJSON(meta)
}

func runCollect(configDir string, verbose bool, args []string) error {
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	ext := fs.String("ext", "", "only collect files whose name ends with this suffix")
	save := fs.Bool("save", false, "also write the result as a snapshot under the data dir")
	if err := fs.Parse(args); err != nil || fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: fsprobe collect <path> [--ext <suffix>] [--save]\n")
		os.Exit(1)
	}
	path := fs.Arg(0)

	sh, err := newShell(configDir, verbose)
	if err != nil {
		fail(err)
	}
	defer sh.close()

	filter := *ext
	if filter == "" {
		filter = sh.cfg.Extension
	}

	logger := sh.logs.For("cli.collect")
	logger.Debug("collecting tree", "path", path, "ext", filter)

	ctx := context.Background()
	tree, err := collect.New(fsys.OS(), filter).Collect(ctx, path)
	if err != nil {
		logger.Error("collection failed", "error", err)
		fail(err)
	}
	logger.Info("tree collected", "path", path, "files", len(tree))

	if *save {
		dir := sh.cfg.ResolveSnapshotDir(sh.dataDir)
		written, err := snapshot.Write(ctx, fsys.OS(), dir, filepath.Base(path), tree)
		if err != nil {
			logger.Error("snapshot write failed", "error", err)
			fail(err)
		}
		logger.Info("snapshot written", "path", written)
		fmt.Fprintf(os.Stderr, "snapshot written to %s\n", written)
	}

	return PrintJSON(tree)
}

func runFirst(configDir string, verbose bool, args []string) error {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: fsprobe first <path> [<path>...]\n")
		os.Exit(1)
	}

	sh, err := newShell(configDir, verbose)
	if err != nil {
		fail(err)
	}
	defer sh.close()

	logger := sh.logs.For("cli.first")
	logger.Debug("racing candidate reads", "candidates", len(args))

	read, err := race.ReadFirst(context.Background(), fsys.OS(), args)
	if err != nil {
		logger.Error("no candidate readable", "error", err)
		fail(err)
	}

	logger.Info("candidate read", "path", read.Path)
	return PrintJSON(read)
}
