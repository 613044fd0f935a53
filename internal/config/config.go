package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rorical/RoriLogo/internal/animation"
)

const (
	DefaultModel         = "gpt-4o-mini"
	DefaultFrameInterval = 16
	DefaultScale         = 5
)

// Profile holds animation, assistant and sharing settings. Zero values fall
// back to defaults.
type Profile struct {
	MovementSpeed float64 `json:"movement_ms_per_unit,omitempty"`
	RotationSpeed float64 `json:"rotation_ms_per_degree,omitempty"`
	FrameInterval int     `json:"frame_interval_ms,omitempty"`
	Scale         float64 `json:"scale,omitempty"`
	APIKey        string  `json:"api_key,omitempty"`
	BaseURL       string  `json:"base_url,omitempty"`
	Model         string  `json:"model,omitempty"`
	RedisAddr     string  `json:"redis_addr,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

func DefaultProfile() Profile {
	return Profile{
		MovementSpeed: animation.DefaultSpeed.MovementPerUnit,
		RotationSpeed: animation.DefaultSpeed.RotationPerDegree,
		FrameInterval: DefaultFrameInterval,
		Scale:         DefaultScale,
		Model:         DefaultModel,
	}
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// Default returns an in-memory config with only the default profile.
func Default() *Config {
	c := &Config{
		Profiles:      map[string]Profile{"default": DefaultProfile()},
		ActiveProfile: "default",
	}
	_ = c.setCurrentProfile()
	return c
}

func (c *Config) profile() Profile {
	if c.currentProfile == nil {
		return DefaultProfile()
	}
	return *c.currentProfile
}

func (c *Config) GetSpeed() animation.Speed {
	p := c.profile()
	speed := animation.DefaultSpeed
	if p.MovementSpeed > 0 {
		speed.MovementPerUnit = p.MovementSpeed
	}
	if p.RotationSpeed > 0 {
		speed.RotationPerDegree = p.RotationSpeed
	}
	return speed
}

func (c *Config) GetFrameInterval() time.Duration {
	ms := c.profile().FrameInterval
	if ms <= 0 {
		ms = DefaultFrameInterval
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Config) GetScale() float64 {
	if s := c.profile().Scale; s > 0 {
		return s
	}
	return DefaultScale
}

// HasAssistant reports whether the active profile can reach the assistant.
func (c *Config) HasAssistant() bool {
	return c.profile().APIKey != ""
}

func (c *Config) GetAPIKey() string {
	return c.profile().APIKey
}

func (c *Config) GetModel() string {
	if m := c.profile().Model; m != "" {
		return m
	}
	return DefaultModel
}

func (c *Config) GetBaseURL() string {
	return c.profile().BaseURL
}

func (c *Config) GetRedisAddr() string {
	return c.profile().RedisAddr
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORILOGO_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORILOGO_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".rorilogo", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := Default()

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

// Use switches the active profile.
func (c *Config) Use(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

// OverrideRedisAddr sets the redis address for this run without saving it.
func (c *Config) OverrideRedisAddr(addr string) {
	if c.currentProfile == nil {
		p := DefaultProfile()
		c.currentProfile = &p
	}
	c.currentProfile.RedisAddr = addr
}
