package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriLogo/internal/app"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start drawing",
	Long:  `Switch to the specified profile and immediately start RoriLogo.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if err := cfg.Use(args[0]); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runApp(app.Options{})
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
