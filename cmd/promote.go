package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <report.json> <cluster-id> <path>",
	Short: "Override the winner of a cluster",
	Long: `Promote a cluster member to winner, overriding the automatic pick.
The image must already be a member of the cluster; promoting the current
winner is a no-op. The report is rewritten in place.

Examples:
  photo-cull promote report.json 3 /photos/shoot/IMG_0142.jpg`,
	Args: cobra.ExactArgs(3),
	RunE: runPromote,
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	reportPath := args[0]
	clusterID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid cluster id %q: %w", args[1], err)
	}
	path := args[2]

	report, err := loadReport(reportPath)
	if err != nil {
		return err
	}

	if err := report.Promote(clusterID, path); err != nil {
		return err
	}

	if err := saveReport(report, reportPath); err != nil {
		return err
	}

	fmt.Printf("Cluster %d winner is now %s\n", clusterID, path)
	return nil
}
