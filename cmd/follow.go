package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriLogo/internal/app"
)

var followCmd = &cobra.Command{
	Use:   "follow [session]",
	Short: "Watch someone else's live session",
	Long: `Follow a session started with 'rorilogo --share <session>'. Everything
drawn there is replayed here. Input is disabled while following.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runApp(app.Options{
			FollowSession: args[0],
			ListenAddr:    listenAddr,
		})
	},
}

func init() {
	followCmd.Flags().StringVar(&listenAddr, "listen", "", "serve /status and /metrics on this address")
	rootCmd.AddCommand(followCmd)
}
