package commands

import (
	"os"
	"os/signal"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/teranos/archon/analysis"
	"github.com/teranos/archon/config"
	"github.com/teranos/archon/errors"
	"github.com/teranos/archon/logger"
	"github.com/teranos/archon/output"
)

// RunCmd runs the configured analysis
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured analysis",
	Long: `Load the analysis configuration, run every group, and render the results.

By default results are printed as text after the run completes. With
--verbose each result is streamed as soon as it is produced. --tap and
--json replace the text output with a TAP stream or a JSON report on
standard output; logs always go to standard error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")
		tap, _ := cmd.Flags().GetBool("tap")
		jsonOut, _ := cmd.Flags().GetBool("json")
		watch, _ := cmd.Flags().GetBool("watch")

		if tap && jsonOut {
			return errors.New("--tap and --json are mutually exclusive")
		}

		if configPath == "" {
			configPath = config.Discover()
			if configPath == "" {
				return errors.Newf("no %s found in this directory or any parent", config.DefaultFileName)
			}
		}

		if watch {
			return watchAndRun(configPath, verbose, tap, jsonOut)
		}
		return runOnce(configPath, verbose, tap, jsonOut)
	},
}

func init() {
	RunCmd.Flags().StringP("config", "c", "", "Path of the analysis configuration file")
	RunCmd.Flags().Bool("verbose", false, "Stream each result as soon as it is produced")
	RunCmd.Flags().Bool("tap", false, "Render results as a TAP stream")
	RunCmd.Flags().Bool("json", false, "Render results as a JSON report")
	RunCmd.Flags().Bool("watch", false, "Re-run the analysis whenever the config file changes")
}

// runOnce loads the config, runs the analysis and renders the results.
// Returns an error when any check failed.
func runOnce(configPath string, verbose, tap, jsonOut bool) error {
	file, err := config.Load(configPath)
	if err != nil {
		return err
	}

	registry, err := newRegistry()
	if err != nil {
		return err
	}

	groups, err := file.Build(registry)
	if err != nil {
		return err
	}

	a := analysis.New(groups, logger.Logger)
	printer := output.NewPrinter(os.Stdout)
	if verbose && !tap && !jsonOut {
		a.Printer = printer
	}

	a.Run(verbose && !tap && !jsonOut)

	switch {
	case tap:
		output.WriteTAP(os.Stdout, a.Groups, logger.Logger)
	case jsonOut:
		if err := output.WriteJSON(os.Stdout, a); err != nil {
			return err
		}
	case !verbose:
		printer.PrintAll(a.Results)
	}

	if !a.Successful() {
		return errors.Newf("analysis failed: %d check(s) failed", a.FailureCount())
	}
	return nil
}

// watchAndRun runs once, then re-runs every time the config file is written.
// Failures are reported per run but do not end the watch; only an interrupt
// does.
func watchAndRun(configPath string, verbose, tap, jsonOut bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(configPath); err != nil {
		return errors.Wrapf(err, "failed to watch %s", configPath)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	run := func() {
		if err := runOnce(configPath, verbose, tap, jsonOut); err != nil {
			logger.Errorw("analysis run failed", "error", err)
		}
	}
	run()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				logger.Infow("config changed, re-running analysis", "path", event.Name)
				run()
				// Editors replace files on save; re-add in case the inode changed
				watcher.Add(configPath)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		case <-interrupt:
			logger.Infow("stopping watch")
			return nil
		}
	}
}
