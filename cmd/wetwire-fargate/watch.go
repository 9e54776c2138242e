package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/template"
	"github.com/lex00/wetwire-fargate-go/internal/validation"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on file changes.
func newWatchCmd() *cobra.Command {
	var (
		in           inputs
		debounce     time.Duration
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild when the configuration or template changes",
		Long: `Watch monitors the task configuration and the input template and rebuilds on change.

Rapid successive changes are debounced into a single rebuild.

Examples:
    wetwire-fargate watch --config serverless.yml -o template.json
    wetwire-fargate watch --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := template.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			return runWatch(in, watchOptions{
				debounce:   debounce,
				format:     format,
				outputFile: outputFile,
			})
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for build (default: stdout)")

	return cmd
}

type watchOptions struct {
	debounce   time.Duration
	format     template.Format
	outputFile string
}

// runWatch monitors the input files and rebuilds on changes.
func runWatch(in inputs, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	files, err := watchedFiles(in)
	if err != nil {
		return fmt.Errorf("failed to resolve inputs: %w", err)
	}

	// Editors often replace files instead of writing them, so the parent
	// directories are watched and events are filtered by name.
	for _, dir := range parentDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	for file := range files {
		logger.Info("Watching", zap.String("path", file))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	rebuild(in, opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event, files) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			logger.Info("Change detected, rebuilding")
			rebuild(in, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error", zap.Error(err))

		case <-sigChan:
			fmt.Fprintln(os.Stderr, "Stopping watch...")
			return nil
		}
	}
}

// watchedFiles returns the absolute paths of the configuration and, when
// set, the input template.
func watchedFiles(in inputs) (map[string]bool, error) {
	files := make(map[string]bool)
	for _, p := range []string{in.configPath, in.templatePath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		files[abs] = true
	}
	return files, nil
}

func parentDirs(files map[string]bool) []string {
	seen := make(map[string]bool)
	var dirs []string
	for file := range files {
		dir := filepath.Dir(file)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// isRelevant reports whether event touches one of the watched files.
func isRelevant(event fsnotify.Event, files map[string]bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return files[abs]
}

// rebuild lints the configuration, then compiles and writes the result.
// Failures are logged instead of returned so the watch loop keeps running.
func rebuild(in inputs, opts watchOptions) {
	if cfg, err := config.Load(in.configPath); err == nil {
		failed := false
		for _, issue := range lintConfig(cfg) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", issue.Severity, validation.FormatIssue(issue))
			if issue.Severity == validation.SeverityError {
				failed = true
			}
		}
		if failed {
			logger.Warn("Lint failed, skipping build")
			return
		}
	}

	result := runBuild(in)
	if err := outputResult(result, opts.format, opts.outputFile); err != nil {
		logger.Error("Build failed", zap.Error(err))
		return
	}
	logger.Info("Build succeeded", zap.Int("resources", len(result.Resources)))
}
