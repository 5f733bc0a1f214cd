package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultOutputDir is where downloaded images land unless overridden.
const DefaultOutputDir = "emoji_downloads"

// Config carries everything a command needs, resolved once before running.
// Flags win over environment variables; credentials are opaque strings and
// presence is the only local check.
type Config struct {
	// SourceToken reads the source workspace catalog (xoxp- or xoxb-).
	SourceToken string

	// Cookie, Token and TeamID form the destination browser session:
	// the raw Cookie header, the xoxc client token and the team subdomain.
	Cookie string
	Token  string
	TeamID string

	OutputDir     string
	InventoryFile string

	MaxAttempts int
	UploadPause time.Duration

	Verbose bool
	Plain   bool
}

// ApplyEnv fills every value the flags left empty from MOJIPORT_* variables,
// then applies hard defaults.
func (c *Config) ApplyEnv() {
	if c.SourceToken == "" {
		c.SourceToken = envOrEmpty("MOJIPORT_SOURCE_TOKEN")
	}
	if c.Cookie == "" {
		c.Cookie = envOrEmpty("MOJIPORT_COOKIE")
	}
	if c.Token == "" {
		c.Token = envOrEmpty("MOJIPORT_TOKEN")
	}
	if c.TeamID == "" {
		c.TeamID = envOrEmpty("MOJIPORT_TEAM_ID")
	}
	if c.OutputDir == "" {
		c.OutputDir = envOrEmpty("MOJIPORT_OUTPUT_DIR")
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if !c.Verbose {
		c.Verbose = envTruthy("MOJIPORT_VERBOSE")
	}
}

// ValidateList covers the commands that read the source catalog.
func (c *Config) ValidateList() error {
	return require("source token", c.SourceToken, "--source-token", "MOJIPORT_SOURCE_TOKEN")
}

// ValidateUpload covers the commands that write to the destination workspace.
func (c *Config) ValidateUpload() error {
	if err := require("session cookie", c.Cookie, "--cookie", "MOJIPORT_COOKIE"); err != nil {
		return err
	}
	if err := require("client token", c.Token, "--token", "MOJIPORT_TOKEN"); err != nil {
		return err
	}
	if err := require("team id", c.TeamID, "--team-id", "MOJIPORT_TEAM_ID"); err != nil {
		return err
	}
	return c.validateTuning()
}

// ValidateExport covers the full pipeline.
func (c *Config) ValidateExport() error {
	if err := c.ValidateList(); err != nil {
		return err
	}
	return c.ValidateUpload()
}

func (c *Config) validateTuning() error {
	if c.MaxAttempts < 1 {
		return errors.New("max attempts must be at least 1")
	}
	if c.UploadPause < 0 {
		return errors.New("upload pause cannot be negative")
	}
	return nil
}

func require(what, value, flag, env string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return fmt.Errorf("%s is required (set %s or %s)", what, flag, env)
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
