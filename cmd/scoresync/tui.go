package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"scoresync/internal/fuse"
	"scoresync/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive session: enter resource URLs, fuse, copy or save the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, h, err := setup()
		if err != nil {
			return err
		}
		// Pick up config edits between runs within one session.
		cm.WatchConfig()

		// The terminal belongs to the TUI; pipeline logs are dropped.
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		fuser := func(ctx context.Context, refs []string, canvasIndex int) ([]byte, error) {
			cfg := cm.Get()
			client, cleanup, err := newFetchClient(cfg, h, logger)
			if err != nil {
				return nil, err
			}
			defer cleanup()

			docs, err := client.GetAll(ctx, refs)
			if err != nil {
				return nil, err
			}
			doc, err := fuse.Run(fuse.Inputs{
				AudioManifest: docs[0],
				ImageManifest: docs[1],
				Temporal:      docs[2],
				Spatial:       docs[3],
				CanvasIndex:   canvasIndex,
				Logger:        logger,
			})
			if err != nil {
				return nil, err
			}
			return fuse.Encode(doc)
		}

		return tui.Run(tui.Config{
			Fuser:       fuser,
			Home:        h,
			CanvasIndex: cm.Get().Defaults.CanvasIndex,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
