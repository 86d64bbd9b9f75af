package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyrsc/internal/buildpipeline"
	"pyrsc/internal/diag"
	"pyrsc/internal/diagfmt"
	"pyrsc/internal/driver"
	"pyrsc/internal/observ"
	"pyrsc/internal/project"
	"pyrsc/internal/source"
	"pyrsc/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Type-check a file or every source file under a directory",
	Long: `Check runs the full pipeline (parse, resolve, type-check) and reports
diagnostics. With a directory argument files are checked in parallel.
Without an argument the nearest project root is checked, or the current
directory when no manifest is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("stage", "all", "stop after stage (parse|resolve|check|all)")
	checkCmd.Flags().Int("jobs", 0, "worker parallelism for directories (0 = all CPUs)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse cached diagnostics for unchanged files")
	checkCmd.Flags().Bool("no-progress", false, "disable the interactive progress display")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	stageName, _ := cmd.Flags().GetString("stage")
	stage := driver.Stage(stageName)
	switch stage {
	case driver.StageParse, driver.StageResolve, driver.StageCheck, driver.StageAll:
	default:
		return fmt.Errorf("unknown stage: %s", stageName)
	}

	target, err := resolveCheckTarget(args)
	if err != nil {
		return err
	}
	maxDiag := checkMaxDiagnostics(cmd, target)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}
	if info.IsDir() {
		return checkDirectory(cmd, target, stage, format, maxDiag)
	}
	return checkFile(cmd, target, stage, format, maxDiag)
}

// resolveCheckTarget maps the optional positional argument to a concrete
// path. No argument means the project root, falling back to the current
// directory.
func resolveCheckTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, ok, err := project.FindProjectRoot(cwd); err == nil && ok {
		return root, nil
	}
	return cwd, nil
}

// checkMaxDiagnostics resolves the diagnostic budget: an explicit flag
// wins, then the manifest, then the default.
func checkMaxDiagnostics(cmd *cobra.Command, target string) int {
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		return maxDiagnostics(cmd)
	}
	startDir := target
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	if root, ok, err := project.FindProjectRoot(startDir); err == nil && ok {
		manifest, err := project.LoadManifest(filepath.Join(root, project.ManifestName))
		if err == nil && manifest.Check.MaxDiagnostics > 0 {
			return manifest.Check.MaxDiagnostics
		}
	}
	return maxDiagnostics(cmd)
}

func checkFile(cmd *cobra.Command, path string, stage driver.Stage, format string, maxDiag int) error {
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	result, err := driver.Diagnose(path, driver.Options{
		Stage:          stage,
		MaxDiagnostics: maxDiag,
		EnableTimings:  timings,
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := printDiagnostics(cmd, format, result.Bag, result.FileSet); err != nil {
		return err
	}
	if timings && result.Timing != nil {
		printTimings(os.Stderr, result.Timing)
	}
	reportOutcome(cmd, format, 1, 0, result.Bag.Len())
	if result.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func checkDirectory(cmd *cobra.Command, dir string, stage driver.Stage, format string, maxDiag int) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	useDiskCache, _ := cmd.Flags().GetBool("disk-cache")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := driver.DirOptions{
		MaxDiagnostics: maxDiag,
		Jobs:           jobs,
	}
	if useDiskCache {
		cache, err := driver.OpenDiskCache("pyrsc")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: disk cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	showProgress := format == "pretty" && !quiet && !noProgress && isTerminal(os.Stderr)
	var (
		fileSet *source.FileSet
		results []driver.DirResult
		runErr  error
	)
	if showProgress {
		files, err := driver.ListSourceFiles(dir)
		if err != nil {
			return err
		}
		names := make([]string, len(files))
		for i, f := range files {
			rel, err := filepath.Rel(dir, f)
			if err != nil {
				rel = f
			}
			names[i] = filepath.ToSlash(rel)
		}

		events := make(chan buildpipeline.Event, 64)
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		prog := tea.NewProgram(ui.NewProgressModel("checking "+dir, names, events), tea.WithOutput(os.Stderr))
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer close(events)
			fileSet, results, runErr = driver.DiagnoseDir(context.Background(), dir, opts)
		}()
		if _, err := prog.Run(); err != nil {
			// keep draining so the workers never block on a dead UI
			go func() {
				for range events {
				}
			}()
			<-done
			return fmt.Errorf("progress display failed: %w", err)
		}
		<-done
	} else {
		fileSet, results, runErr = driver.DiagnoseDir(context.Background(), dir, opts)
	}
	if runErr != nil {
		return fmt.Errorf("check failed: %w", runErr)
	}

	combined := diag.NewBag(maxDiag)
	fromCache := 0
	for _, r := range results {
		if r.FromCache {
			fromCache++
		}
		if r.Bag != nil {
			combined.Merge(r.Bag)
		}
	}
	combined.Sort()

	if err := printDiagnostics(cmd, format, combined, fileSet); err != nil {
		return err
	}
	reportOutcome(cmd, format, len(results), fromCache, combined.Len())
	if combined.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, format string, bag *diag.Bag, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.WriteJSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		if bag.Len() > 0 {
			opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), ShowNotes: true}
			diagfmt.Pretty(os.Stderr, bag, fs, opts)
		}
		return nil
	}
}

// reportOutcome prints the one-line summary for the pretty format. JSON
// output already carries the count.
func reportOutcome(cmd *cobra.Command, format string, files, fromCache, diags int) {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet || format != "pretty" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "checked %d file", files)
	if files != 1 {
		b.WriteString("s")
	}
	if fromCache > 0 {
		fmt.Fprintf(&b, " (%d from cache)", fromCache)
	}
	if diags == 0 {
		b.WriteString(", no diagnostics")
	} else {
		fmt.Fprintf(&b, ", %d diagnostic", diags)
		if diags != 1 {
			b.WriteString("s")
		}
	}
	fmt.Fprintln(os.Stdout, b.String())
}

func printTimings(w *os.File, report *observ.Report) {
	fmt.Fprintln(w, "timings:")
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  %-12s %7.2f ms\n", "total", report.TotalMS)
}
