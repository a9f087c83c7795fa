package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// validation errors.
var (
	errEmptyLocaleDir   = errors.New("catalog.localeDir cannot be empty")
	errInvalidDomain    = errors.New("catalog.domain must be a plain file name prefix")
	errInvalidLanguage  = errors.New("invalid language")
	errInvalidLogLevel  = errors.New("invalid Log.Level")
	errInvalidLogFormat = errors.New("invalid Log.Format")
	validLogFormats     = []string{"console", "json"}
)

// parseLocale accepts both "pt_BR" and "pt-BR" spellings, with an
// optional codeset or modifier.
func parseLocale(locale string) (language.Tag, error) {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return language.Parse(strings.ReplaceAll(locale, "_", "-"))
}

func (cfg *Config) validate() error {
	if cfg.Catalog.LocaleDir == "" {
		return errEmptyLocaleDir
	}

	if cfg.Catalog.Domain == "" || strings.ContainsAny(cfg.Catalog.Domain, `/\`) {
		return fmt.Errorf("%w: %q", errInvalidDomain, cfg.Catalog.Domain)
	}

	if cfg.Catalog.SourceLanguage != "" {
		if _, err := parseLocale(cfg.Catalog.SourceLanguage); err != nil {
			return fmt.Errorf("%w %q for catalog.sourceLanguage: %w", errInvalidLanguage, cfg.Catalog.SourceLanguage, err)
		}
	}

	for _, lang := range cfg.Catalog.Languages {
		if _, err := parseLocale(lang); err != nil {
			return fmt.Errorf("%w %q in catalog.languages: %w", errInvalidLanguage, lang, err)
		}
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidLogLevel, cfg.Log.Level, err)
	}

	if !slices.Contains(validLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w %q, expected one of %v", errInvalidLogFormat, cfg.Log.Format, validLogFormats)
	}

	return nil
}
