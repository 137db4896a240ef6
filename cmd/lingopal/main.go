package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lingopal/internal/cli"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
