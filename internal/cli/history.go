package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"loadout/internal/config"
	"loadout/internal/history"
	"loadout/internal/ui"
)

var (
	historyLimit int
	historyClear bool
	historyPrune time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded operations",
	Long: `Display the journal of installs, removals and maintenance runs.
Recording is enabled with general.history in the config file.

Examples:
  loadout history              # Show recent history
  loadout history -l 50        # Show last 50 operations
  loadout history --prune 720h # Forget entries older than 30 days
  loadout history --clear      # Forget everything`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "number of entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all entries")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete entries older than this age (e.g. 720h)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !cfg.General.History {
		ui.MutedMsg("History recording is off; set general.history = true in %s", config.ConfigPath())
	}

	store, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if historyClear {
		ok, err := confirm("Delete all history entries")
		if err != nil {
			return err
		}
		if !ok {
			return ui.ErrAborted
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		ui.SuccessMsg("History cleared")
		return nil
	}

	if historyPrune > 0 {
		n, err := store.Prune(historyPrune)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		ui.SuccessMsg("Removed %d entries older than %s", n, historyPrune)
		return nil
	}

	entries, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	rows := make([]ui.HistoryRow, len(entries))
	for i, e := range entries {
		rows[i] = ui.HistoryRow{
			Session: e.Session,
			Time:    e.Timestamp,
			Op:      string(e.Operation),
			Package: e.Package,
			Method:  e.Method,
			Success: e.Success,
			Error:   e.Error,
		}
	}
	ui.RenderHistory(os.Stdout, rows)

	if total, err := store.Count(); err == nil && total > len(entries) {
		ui.MutedMsg("\nShowing %d of %d total entries", len(entries), total)
	}
	return nil
}

// sessionFooter names the history session of this run as the SESSION
// column of `loadout history` shows it. Empty when nothing is recorded.
func sessionFooter(store *history.Store) string {
	id := store.Session()
	if id == "" {
		return ""
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return "This run is recorded as history session " + id
}
