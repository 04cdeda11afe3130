package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"wander-server/internal/domain"
	"wander-server/internal/engine"
	"wander-server/internal/infrastructure/storage"
	"wander-server/internal/render"

	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		frames  uint64
		pngPath string
	)

	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Re-simulate a saved recording and print the final room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := (&storage.ReplayService{}).Load(args[0])
			if err != nil {
				return fmt.Errorf("load recording: %w", err)
			}
			if frames > 0 && frames < rec.Frames {
				truncateRecording(rec, frames)
			}

			room := domain.DefaultRoom()
			sim, err := engine.Replay(*rec, room)
			if err != nil {
				return err
			}
			frame := sim.Snapshot()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed %d, %d frames, %d recorded actions\n", rec.Seed, frame.Number, len(rec.Actions))
			fmt.Fprintf(out, "People inside: %d / %d (interval %d)\n", frame.Population(), frame.MaxPopulation, frame.Interval)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tX\tY\tSPEED\tLEAVING")
			for _, st := range frame.Agents {
				fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.2f\t%t\n", st.ID, st.Pos.X(), st.Pos.Y(), st.Speed, st.Leaving())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if pngPath != "" {
				f, err := os.Create(pngPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := render.EncodePNG(f, render.BuildScene(frame, room)); err != nil {
					return fmt.Errorf("write png: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&frames, "frames", 0, "stop after N frames (0 - whole recording)")
	cmd.Flags().StringVar(&pngPath, "png", "", "save the final frame as PNG")
	return cmd
}

// truncateRecording обрезает запись до n кадров
func truncateRecording(rec *domain.Recording, n uint64) {
	kept := rec.Actions[:0]
	for _, act := range rec.Actions {
		if act.Frame <= n {
			kept = append(kept, act)
		}
	}
	rec.Actions = kept
	rec.Frames = n
}
