package cmd

import (
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriLogo/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
	Long:  `Manage profiles holding animation speed, canvas scale, assistant and sharing settings.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			profile := cfg.Profiles[name]
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Speed: %g ms/unit, %g ms/degree\n", profile.MovementSpeed, profile.RotationSpeed)
			fmt.Printf("    Assistant: %s\n", yesNo(profile.APIKey != ""))
			fmt.Printf("    Redis: %s\n", orDash(profile.RedisAddr))
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Movement: %g ms/unit\n", profile.MovementSpeed)
		fmt.Printf("Rotation: %g ms/degree\n", profile.RotationSpeed)
		fmt.Printf("Frame interval: %d ms\n", profile.FrameInterval)
		fmt.Printf("Scale: %g units/cell\n", profile.Scale)
		fmt.Printf("Model: %s\n", orDash(profile.Model))
		fmt.Printf("Base URL: %s\n", orDash(profile.BaseURL))
		hasKey := "Not set"
		if profile.APIKey != "" {
			hasKey = "Set (hidden for security)"
		}
		fmt.Printf("API Key: %s\n", hasKey)
		fmt.Printf("Redis: %s\n", orDash(profile.RedisAddr))
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName = promptString(promptui.Prompt{Label: "Profile name"})
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		cfg.Profiles[profileName] = editProfile(config.DefaultProfile())
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(cfg, args, "Select profile to edit", "")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = editProfile(profile)
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(cfg, args, "Select profile to delete", "")
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, profileName)
		if cfg.ActiveProfile == profileName {
			others := profileNames(cfg, "")
			if len(others) == 0 {
				cfg.Profiles["default"] = config.DefaultProfile()
				others = []string{"default"}
			}
			cfg.ActiveProfile = others[0]
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		if len(args) == 0 && len(profileNames(cfg, cfg.ActiveProfile)) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}
		profileName := profileArg(cfg, args, "Select profile to switch to", cfg.ActiveProfile)

		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// profileNames returns the sorted profile names other than exclude
func profileNames(cfg *config.Config, exclude string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != exclude {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func profileArg(cfg *config.Config, args []string, label, exclude string) string {
	if len(args) > 0 {
		return args[0]
	}
	names := profileNames(cfg, exclude)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}
	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func editProfile(profile config.Profile) config.Profile {
	profile.MovementSpeed = promptFloat("Movement (ms per unit)", profile.MovementSpeed)
	profile.RotationSpeed = promptFloat("Rotation (ms per degree)", profile.RotationSpeed)
	profile.FrameInterval = int(promptFloat("Frame interval (ms)", float64(profile.FrameInterval)))
	profile.Scale = promptFloat("Scale (units per cell)", profile.Scale)
	profile.APIKey = promptString(promptui.Prompt{Label: "API Key (optional)", Default: profile.APIKey, Mask: '*'})
	profile.Model = promptString(promptui.Prompt{Label: "Model", Default: profile.Model})
	profile.BaseURL = promptString(promptui.Prompt{Label: "Base URL (optional)", Default: profile.BaseURL})
	profile.RedisAddr = promptString(promptui.Prompt{Label: "Redis address (optional)", Default: profile.RedisAddr})
	return profile
}

func promptString(prompt promptui.Prompt) string {
	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return value
}

func promptFloat(label string, current float64) float64 {
	value := promptString(promptui.Prompt{
		Label:   label,
		Default: strconv.FormatFloat(current, 'g', -1, 64),
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("not a number")
			}
			if v <= 0 {
				return fmt.Errorf("must be positive")
			}
			return nil
		},
	})
	v, _ := strconv.ParseFloat(value, 64)
	return v
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
