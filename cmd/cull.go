package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-cull/internal/config"
	"github.com/kozaktomas/photo-cull/internal/cull"
	"github.com/kozaktomas/photo-cull/internal/extract"
)

var cullCmd = &cobra.Command{
	Use:   "cull <directory>",
	Short: "Cull a directory of photos into a report of clusters and winners",
	Long: `Scan a directory recursively for photos, group them into bursts by
capture time, cluster near-duplicates within each burst and pick the best
shot of every cluster. The report is written as JSON.

Quality metrics (sharpness, blur, eyes, exposure) come from a sidecar JSON
file produced by an external analysis tool; images without metrics are kept
but flagged and never win against a scored sibling.

Examples:
  # Cull a shoot with the default thresholds
  photo-cull cull ~/photos/shoot-2024

  # Wider burst gap, stricter duplicate threshold
  photo-cull cull ~/photos/shoot-2024 --gap-ms 1500 --threshold 6

  # Attach quality metrics and merge visually similar clusters across bursts
  photo-cull cull ~/photos/shoot-2024 --metrics metrics.json --semantic`,
	Args: cobra.ExactArgs(1),
	RunE: runCull,
}

func init() {
	rootCmd.AddCommand(cullCmd)

	cullCmd.Flags().Int("gap-ms", cull.DefaultGapMS, "Burst gap in milliseconds")
	cullCmd.Flags().Int("threshold", cull.DefaultHashThreshold, "Hamming distance threshold for near-duplicates")
	cullCmd.Flags().Bool("semantic", false, "Merge similar clusters across bursts using embeddings")
	cullCmd.Flags().Float64("semantic-threshold", cull.DefaultSemanticThreshold, "Cosine similarity threshold for semantic merging")
	cullCmd.Flags().String("metrics", "", "Path to a sidecar JSON file with quality metrics")
	cullCmd.Flags().String("output", "report.json", "Path for the JSON report")
	cullCmd.Flags().Int("concurrency", 0, "Number of parallel workers (0 = config default)")
	cullCmd.Flags().Bool("quiet", false, "Suppress progress output")
}

func runCull(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	opts := cull.Options{
		GapMS:             cfg.Cull.BurstGapMS,
		HashThreshold:     cfg.Cull.HashThreshold,
		SemanticThreshold: cfg.Cull.SemanticThreshold,
		Scoring:           cfg.Weights.Scoring(),
		Concurrency:       cfg.Cull.Concurrency,
	}
	// Flags beat env config, but only when set explicitly.
	if cmd.Flags().Changed("gap-ms") {
		opts.GapMS = mustGetInt(cmd, "gap-ms")
	}
	if cmd.Flags().Changed("threshold") {
		opts.HashThreshold = mustGetInt(cmd, "threshold")
	}
	if cmd.Flags().Changed("semantic-threshold") {
		opts.SemanticThreshold = mustGetFloat64(cmd, "semantic-threshold")
	}
	if mustGetInt(cmd, "concurrency") > 0 {
		opts.Concurrency = mustGetInt(cmd, "concurrency")
	}
	opts.Semantic = mustGetBool(cmd, "semantic")
	quiet := mustGetBool(cmd, "quiet")

	ctx := context.Background()

	paths, err := extract.Scan(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found in %s", args[0])
	}
	if !quiet {
		fmt.Printf("Found %d images\n", len(paths))
	}

	extractor := &extract.Extractor{
		WithEmbeddings: opts.Semantic,
		Concurrency:    opts.Concurrency,
		Quiet:          quiet,
	}

	if metricsPath := mustGetString(cmd, "metrics"); metricsPath != "" {
		extractor.Metrics, err = extract.LoadMetrics(metricsPath)
		if err != nil {
			return err
		}
	}

	exif, err := extract.NewTimestampReader()
	if err != nil {
		// Works without exiftool installed, just with mtime timestamps.
		fmt.Printf("Warning: exiftool unavailable (%v), using file modification times\n", err)
	} else {
		extractor.Exif = exif
		defer exif.Close()
	}

	if opts.Semantic {
		extractor.Embeddings = extract.NewEmbeddingClient(cfg.Embedding.URL)
	}

	images, err := extractor.Run(ctx, paths)
	if err != nil {
		return err
	}

	report, err := cull.Run(images, opts)
	if err != nil {
		return err
	}

	output := mustGetString(cmd, "output")
	if err := saveReport(report, output); err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("\nBursts:   %d\n", len(report.Bursts))
		fmt.Printf("Clusters: %d\n", len(report.Clusters))
		fmt.Printf("Winners:  %d\n", len(report.Winners()))
		fmt.Printf("\nReport written to %s\n", output)
	}
	return nil
}
