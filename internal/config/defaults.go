package config

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Catalog.LocaleDir = "i18n"
	cfg.Catalog.Domain = "app"
	cfg.Catalog.SourceLanguage = "en"
	cfg.Catalog.Languages = nil
	cfg.Catalog.IncludeUnfinished = false
	cfg.Catalog.StrictMissingKeys = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = nil
	cfg.Log.Format = "console"
}
