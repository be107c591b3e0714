package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scoresync/internal/fuse"
	"scoresync/internal/output"
)

var (
	fuseCanvasIndex int
	fuseOutputPath  string
)

var fuseCmd = &cobra.Command{
	Use:   "fuse AUDIO IMAGES TEMPORAL SPATIAL",
	Short: "Fuse the four source documents into one synchronized manifest",
	Long: `Fuse reads the audio manifest, the score image manifest, and the
temporal and spatial annotation collections (local paths or URLs),
reconciles them, and writes the fused manifest.

Examples:
  scoresync fuse audio.json score.json temporal.json spatial.json
  scoresync fuse audio.json score.json temporal.json spatial.json -i 1 -f out.json
  scoresync fuse https://example.org/recording.json score.json temporal.json spatial.json -f -`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, h, err := setup()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		client, cleanup, err := newFetchClient(cfg, h, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		docs, err := client.GetAll(ctx, args)
		if err != nil {
			return err
		}

		index := fuseCanvasIndex
		if !cmd.Flags().Changed("canvas-index") {
			index = cfg.Defaults.CanvasIndex
		}

		doc, err := fuse.Run(fuse.Inputs{
			AudioManifest: docs[0],
			ImageManifest: docs[1],
			Temporal:      docs[2],
			Spatial:       docs[3],
			CanvasIndex:   index,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		path := fuseOutputPath
		if path == "" {
			path = cfg.Defaults.OutputPath
		}
		if path == "-" {
			return output.Write(doc)
		}

		data, err := fuse.Encode(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("wrote fused manifest", "path", path, "bytes", len(data))
		return nil
	},
}

func init() {
	fuseCmd.Flags().IntVarP(&fuseCanvasIndex, "canvas-index", "i", 0, "index of the audio canvas in the audio manifest")
	fuseCmd.Flags().StringVarP(&fuseOutputPath, "file", "f", "", "output file path, or - for stdout (default from config); files are always JSON so reruns stay byte-identical, stdout honors --output")

	rootCmd.AddCommand(fuseCmd)
}
