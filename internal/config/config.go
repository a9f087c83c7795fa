// Package config holds the settings of the linguist command: where the
// catalogs live, how lookups behave and how logging is set up.
package config

import (
	"fmt"
	"os"

	"github.com/cdmanager/go-linguist"
)

// Config is read from defaults, then a YAML file, then LINGUIST_*
// environment variables.
type Config struct {
	Catalog struct {
		LocaleDir      string `env:"LINGUIST_LOCALE_DIR,overwrite" yaml:"localeDir"`
		Domain         string `env:"LINGUIST_DOMAIN,overwrite" yaml:"domain"`
		SourceLanguage string `env:"LINGUIST_SOURCE_LANGUAGE,overwrite" yaml:"sourceLanguage"`
		// Languages are preloaded at startup.
		Languages         []string `env:"LINGUIST_LANGUAGES,overwrite" yaml:"languages"`
		IncludeUnfinished bool     `env:"LINGUIST_INCLUDE_UNFINISHED,overwrite" yaml:"includeUnfinished"`
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"LINGUIST_STRICT_MISSING_KEYS,overwrite" yaml:"strictMissingKeys"`
	} `yaml:"catalog"`

	Log struct {
		Level   string   `env:"LINGUIST_LOG_LEVEL,overwrite" yaml:"level"`
		Outputs []string `env:"LINGUIST_LOG_OUTPUTS,overwrite" yaml:"outputs"`
		Format  string   `env:"LINGUIST_LOG_FORMAT,overwrite" yaml:"format"`
	} `yaml:"log"`
}

// Load fills cfg from its sources. The file path comes from path, or
// LINGUIST_CONFIGFILE when path is empty; a missing file is skipped.
func (cfg *Config) Load(path string) error {
	if path == "" {
		path = os.Getenv("LINGUIST_CONFIGFILE")
	}

	cfg.SetDefaults()

	if err := cfg.readYAML(path); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}

// TextDomain returns a TextDomain for the configured catalogs.
func (cfg *Config) TextDomain() *linguist.TextDomain {
	t := linguist.NewTranslations(cfg.Catalog.LocaleDir, cfg.Catalog.Domain, nil)
	t.SourceLanguage = cfg.Catalog.SourceLanguage
	t.IncludeUnfinished = cfg.Catalog.IncludeUnfinished
	t.StrictMissing = cfg.Catalog.StrictMissingKeys
	return t
}
