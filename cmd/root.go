package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "huetone",
	Short: "Personal color analysis relay and tools",
	Long: `Huetone runs the relay server behind the personal color analysis web app
and provides command line tools to analyze photos and request AI styled
composites through a running relay.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of a running huetone relay")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
