package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriLogo/internal/app"
	"github.com/Rorical/RoriLogo/internal/config"
	"github.com/Rorical/RoriLogo/internal/logging"
)

var (
	scriptPath   string
	watchPath    string
	listenAddr   string
	shareSession string
	redisAddr    string
	logFile      string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "rorilogo",
	Short: "Animated turtle graphics in the terminal",
	Long: `RoriLogo draws Logo programs in the terminal, one line at a time.
Type commands like 'repeat 4 [fd 50 rt 90]' and watch the turtle go.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runApp(app.Options{
			ScriptPath:   scriptPath,
			WatchPath:    watchPath,
			ListenAddr:   listenAddr,
			ShareSession: shareSession,
		})
	},
}

// loadConfig loads the config and applies the persistent flag overrides
func loadConfig() *config.Config {
	cfg := mustLoadConfig()
	if redisAddr != "" {
		cfg.OverrideRedisAddr(redisAddr)
	}
	return cfg
}

func runApp(opts app.Options) {
	opts.Config = loadConfig()

	logger, closeLog, err := logging.Open(logFile, logLevel)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()
	opts.Logger = logger

	application, err := app.NewApplication(opts)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Printf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "redis address, overrides the profile")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	rootCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "run a script file at startup")
	rootCmd.Flags().StringVarP(&watchPath, "watch", "w", "", "run a script file and redraw it whenever it changes")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "serve /status and /metrics on this address")
	rootCmd.Flags().StringVar(&shareSession, "share", "", "publish everything you draw to this live session")

	rootCmd.AddCommand(profileCmd)
}
