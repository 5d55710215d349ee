package main

import (
	"github.com/spf13/cobra"

	"unet-submit/cmd/app"
)

func main() {
	rootCmd := app.NewSubmitCommand()
	if err := rootCmd.Execute(); err != nil {
		cobra.CheckErr(err)
	}
}
