package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigFile = "translations.yml"
	// #nosec G101 // this is a path, not a credential
	credentialsEnvVar = "SHEET_TRANSLATIONS_CREDENTIALS"
)

type Backend string

const (
	BackendGoogle Backend = "google"
	BackendXLSX   Backend = "xlsx"
)

type Config struct {
	SpreadsheetID string `yaml:"spreadsheetId"`
	// older configuration files spell it this way
	LegacySpreadsheetID string   `yaml:"spreadsSheetId"`
	SheetName           string   `yaml:"sheetName"`
	Range               string   `yaml:"range"`
	Languages           []string `yaml:"languages"`
	Header              []string `yaml:"header"`
	FormatName          string   `yaml:"format"`
	LanguagesRootPath   string   `yaml:"languagesRootPath"`
	LanguagePathPattern string   `yaml:"languagePathPattern"`
	CredentialsPath     string   `yaml:"credentialsPath"`
	TokenPath           string   `yaml:"tokenPath"`
	Backend             Backend  `yaml:"backend"`
	WorkbookPath        string   `yaml:"workbookPath"`

	Format Format `yaml:"-"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("reading %s: %v", path, err)
	}
	return parseConfig(data)
}

// parseConfig reads YAML (or JSON) configuration and validates it.
func parseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, configError("%v", err)
	}
	if err = cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.SpreadsheetID == "" {
		c.SpreadsheetID = c.LegacySpreadsheetID
	}
	if creds := os.Getenv(credentialsEnvVar); creds != "" {
		c.CredentialsPath = creds
	}
	if len(c.Header) == 0 {
		c.Header = nil
	}
	if c.Backend == "" {
		c.Backend = BackendGoogle
	}

	format, err := ParseFormat(c.FormatName)
	if err != nil {
		return err
	}
	c.Format = format

	switch c.Backend {
	case BackendGoogle:
		if c.SpreadsheetID == "" {
			return configError("missing spreadsheetId")
		}
	case BackendXLSX:
		if c.WorkbookPath == "" {
			return configError("missing workbookPath for the %s backend", BackendXLSX)
		}
	default:
		return configError("unknown backend %q", c.Backend)
	}

	if len(c.Languages) == 0 {
		return configError("no languages configured")
	}
	seen := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		if lang == "" {
			return configError("empty language identifier")
		}
		if seen[lang] {
			return configError("language %q listed twice", lang)
		}
		seen[lang] = true
		if _, err := language.Parse(lang); err != nil {
			log.WithField("language", lang).Warn("language is not a BCP 47 tag")
		}
	}

	if !languagePlaceholder.MatchString(c.LanguagePathPattern) {
		return configError("languagePathPattern %q has no {{language}} placeholder", c.LanguagePathPattern)
	}

	return newColumnResolver(c.Header, c.Languages).Validate()
}

// sheetRange is the A1 notation range including the sheet name, quoted when needed.
func (c *Config) sheetRange() string {
	if c.SheetName == "" {
		return c.Range
	}
	name := c.SheetName
	quoted := len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\''
	if !quoted && strings.ContainsFunc(name, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z')
	}) {
		name = "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	if c.Range == "" {
		return name
	}
	return fmt.Sprintf("%s!%s", name, c.Range)
}

func (c *Config) translationPath(lang string) string {
	return renderPath(c.LanguagesRootPath, c.LanguagePathPattern, lang)
}
