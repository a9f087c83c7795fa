package linguist

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the logger used by package linguist. Replace it to route
// catalog warnings elsewhere; it derives from the global zerolog logger
// at initialisation.
var Logger zerolog.Logger = log.With().Str("sys", "linguist").Logger()

// logMissingOnce logs a missing translation once per (locale, key) pair.
func logMissingOnce(seen *sync.Map, locale, key string) {
	id := locale + "\x00" + key
	if _, loaded := seen.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing translation")
	}
}

// buildLogKey composes "context\x04source" like gettext's msgctxt
// separator, with the disambiguation appended after '|'.
func buildLogKey(context, source, disambiguation string) string {
	key := context + "\x04" + source
	if disambiguation != "" {
		key += "|" + disambiguation
	}
	return key
}
