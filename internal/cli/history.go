package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"wander-server/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent lifecycle events from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Storage.DBPath == "" {
				return fmt.Errorf("journal is disabled (storage.db_path is empty)")
			}

			db, err := store.Open(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			journal := store.NewJournal(db)
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if stats {
				st, err := journal.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d events in %d sessions\n", st.Total, st.Sessions)
				kinds := make([]string, 0, len(st.ByKind))
				for k := range st.ByKind {
					kinds = append(kinds, k)
				}
				sort.Strings(kinds)
				for _, k := range kinds {
					fmt.Fprintf(out, "  %-15s %d\n", k, st.ByKind[k])
				}
				return nil
			}

			entries, err := journal.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "no events")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSESSION\tFRAME\tEVENT\tAGENT\tX\tY")
			for _, e := range entries {
				session := e.Session
				if len(session) > 8 {
					session = session[:8]
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%.0f\t%.0f\n",
					e.Event.At.Format("15:04:05.000"), session, e.Event.Frame,
					e.Event.Type, e.Event.AgentID, e.Event.Pos.X(), e.Event.Pos.Y())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "how many events to print")
	cmd.Flags().BoolVar(&stats, "stats", false, "print counts by event kind instead")
	return cmd
}
