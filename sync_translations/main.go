package main

import (
	"context"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

/*
Keeps per-language translation files in sync with a spreadsheet that has one row per key
and one column per language.

1. "pull" reads the configured range and merges the values into each language's file.
Keys without a value in the spreadsheet keep whatever the file already had.

2. "push" reads every language's file and overwrites the configured range with the union
of their keys.

Files are json, Android xml resources or iOS .strings, picked by the "format" setting.
*/

func main() {
	// a missing .env is fine, the process environment is used as-is
	_ = godotenv.Load()

	var (
		configPath string
		verbose    bool
	)
	rootCmd := &cobra.Command{
		Use:           "sync_translations",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigFile, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Write the spreadsheet's translations into the language files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return pull(cmd.Context(), cfg, openSpreadsheet)
		},
		Args: cobra.NoArgs,
	}
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Overwrite the spreadsheet range with the language files' translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return push(cmd.Context(), cfg, openSpreadsheet)
		},
		Args: cobra.NoArgs,
	}

	rootCmd.AddCommand(pullCmd, pushCmd)
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		log.Fatalf("error encountered: %v", err)
	}
}
