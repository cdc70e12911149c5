package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/source"
	"github.com/mvp-joe/scout/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-analyze a file whenever it changes",
	Long: `Watch analyzes a file, prints its structure, and re-analyzes on every
save until interrupted. Saves are debounced, and editor save strategies
that replace the file (rename, delete + create) are handled.

When a save introduces a syntax error the previous analysis stays current
and the error is printed; the next clean save picks up again.

Example:
  scout watch app.py`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nStopping watch...")
		cancel()
	}()

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeWatch(ctx, a, os.Stdout, args[0], jsonOut)
}

// executeWatch runs the watch loop: one analysis up front, then one per
// debounced change until the context is cancelled. The initial load must
// succeed; afterwards a failed reload keeps the previous state.
func executeWatch(ctx context.Context, a *analyzer.Analyzer, w io.Writer, file string, asJSON bool) error {
	unit, err := source.Load(file)
	if err != nil {
		return err
	}
	defer unit.Close()

	if !asJSON {
		fmt.Fprintf(w, "Watching %s (press Ctrl+C to stop)\n\n", unit.Path)
	}
	if err := renderWatchPass(ctx, a, w, unit, asJSON); err != nil {
		return err
	}

	fw, err := watcher.New(unit.Path)
	if err != nil {
		return err
	}
	defer fw.Stop()

	err = fw.Start(ctx, func() {
		if rerr := unit.Reload(); rerr != nil {
			if asJSON {
				printJSON(w, map[string]string{"error": rerr.Error()})
				return
			}
			fmt.Fprintf(w, "\n--- %s parse failed: %v (keeping previous analysis) ---\n",
				time.Now().Format("15:04:05"), rerr)
			return
		}
		if !asJSON {
			fmt.Fprintf(w, "\n--- %s reloaded ---\n", time.Now().Format("15:04:05"))
		}
		if rerr := renderWatchPass(ctx, a, w, unit, asJSON); rerr != nil {
			fmt.Fprintf(w, "analysis failed: %v\n", rerr)
		}
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

// renderWatchPass analyzes the unit's current state and renders it.
func renderWatchPass(ctx context.Context, a *analyzer.Analyzer, w io.Writer, unit *source.Unit, asJSON bool) error {
	res, err := a.AnalyzeUnit(ctx, unit)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(w, res.StructurePayload())
	}
	renderStructure(w, res)
	return nil
}
