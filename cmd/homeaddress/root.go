package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"home-address/config"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// settings holds defaults, environment and bound flags
var settings = config.New()

var rootCmd = &cobra.Command{
	Use:           "homeaddress",
	Short:         "Home address service",
	Long:          `homeaddress stores one postal address per Russian phone number and serves it over HTTP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.SetVersionTemplate("homeaddress version {{.Version}}\n")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	_ = settings.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = settings.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}
