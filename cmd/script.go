package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriLogo/internal/logo"
	"github.com/Rorical/RoriLogo/internal/share"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Manage scripts saved in redis",
	Long:  `Save, load, list and delete named scripts in the profile's redis.`,
}

var saveScriptCmd = &cobra.Command{
	Use:   "save [name] [file]",
	Short: "Save a script file under a name",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := os.ReadFile(args[1])
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		if _, err := logo.Parse(string(src)); err != nil {
			log.Fatalf("Refusing to save invalid script: %v", err)
		}

		withStore(func(ctx context.Context, store *share.Store) error {
			return store.Save(ctx, args[0], string(src))
		})
		fmt.Printf("Script '%s' saved\n", args[0])
	},
}

var loadScriptCmd = &cobra.Command{
	Use:   "load [name]",
	Short: "Print a saved script",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store *share.Store) error {
			src, err := store.Load(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), src)
			return nil
		})
	},
}

var listScriptsCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scripts, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store *share.Store) error {
			names, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No saved scripts")
			}
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		})
	},
}

var deleteScriptCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a saved script",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store *share.Store) error {
			return store.Delete(ctx, args[0])
		})
		fmt.Printf("Script '%s' deleted\n", args[0])
	},
}

func withStore(fn func(ctx context.Context, store *share.Store) error) {
	cfg := loadConfig()
	addr := cfg.GetRedisAddr()
	if addr == "" {
		log.Fatalf("No redis address: set one with 'rorilogo profile edit' or --redis")
	}

	store := share.New(addr)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fn(ctx, store); err != nil {
		log.Fatalf("Script command failed: %v", err)
	}
}

func init() {
	scriptCmd.AddCommand(saveScriptCmd)
	scriptCmd.AddCommand(loadScriptCmd)
	scriptCmd.AddCommand(listScriptsCmd)
	scriptCmd.AddCommand(deleteScriptCmd)
	rootCmd.AddCommand(scriptCmd)
}
