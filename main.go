package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:          "docdiff [command]",
		Short:        "Format and compare JSON and Markdown documents",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
