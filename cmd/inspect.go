package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <report.json>",
	Short: "Show the clusters and winners of a report",
	Long: `Print a summary table of a culling report: one row per cluster with
its bursts, size, winner and winning score.

Examples:
  # Human-readable table
  photo-cull inspect report.json

  # Winner paths only, one per line (for xargs, rsync, etc.)
  photo-cull inspect report.json --winners

  # Full report as JSON
  photo-cull inspect report.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Print the full report as JSON")
	inspectCmd.Flags().Bool("winners", false, "Print only the winner paths")
}

func runInspect(cmd *cobra.Command, args []string) error {
	report, err := loadReport(args[0])
	if err != nil {
		return err
	}

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if mustGetBool(cmd, "winners") {
		for _, winner := range report.Winners() {
			fmt.Println(winner)
		}
		return nil
	}

	fmt.Printf("Run:     %s\n", report.RunID)
	fmt.Printf("Created: %s\n", report.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Images:  %d in %d bursts\n\n", len(report.Images), len(report.Bursts))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLUSTER\tBURSTS\tSIZE\tWINNER\tSCORE")
	fmt.Fprintln(w, "-------\t------\t----\t------\t-----")

	for i := range report.Clusters {
		c := &report.Clusters[i]
		winnerScore := 0.0
		for pos, member := range c.Members {
			if member == c.Winner {
				winnerScore = c.Scores[pos]
				break
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%.3f\n",
			c.ID, joinInts(c.BurstIDs), len(c.Members), c.Winner, winnerScore)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d clusters\n", len(report.Clusters))
	return nil
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ",")
}
