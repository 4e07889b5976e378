// Root command and global flags for the pinv CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values shared by all subcommands.
var (
	flagConfigDir   string
	flagDataDir     string
	flagTemplateDir string
	flagJSON        bool
	flagYes         bool
)

var rootCmd = &cobra.Command{
	Use:   "pinv",
	Short: "pinv is a personal inventory tracker",
	Long: `pinv tracks personal inventory under user-defined catagories: typed
schemas you declare at runtime. Entries are keyed by the base64 payload
printed on their labels and carry a location, a quantity, and one value
per declared field.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().StringVar(&flagTemplateDir, "template-dir", "", "user template directory (default: <data-dir>/templates)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(catagoryCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(giveCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
