package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photo-cull",
	Short: "A CLI tool for culling photo shoots",
	Long: `Photo Cull groups a directory of photos into bursts, clusters
near-duplicates within each burst using perceptual hashes, scores every
image on quality metrics and picks the best shot of each cluster. The
result is a JSON report that downstream tools (or the promote command)
can work with.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
