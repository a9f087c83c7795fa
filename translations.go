// Package linguist loads Qt Linguist .ts translation catalogs and
// resolves (context, source) lookups against them, falling back to the
// source text when no translation is available.
package linguist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// PathResolver resolves the path of the catalog for a locale.
type PathResolver func(root string, locale string, domain string) string

// DefaultResolver resolves paths in the Qt layout <root>/<domain>_<locale>.ts,
// for example "i18n/app_fr.ts".
func DefaultResolver(root string, locale string, domain string) string {
	return filepath.Join(root, fmt.Sprintf("%s_%s.ts", domain, locale))
}

// TextDomain holds the catalogs of one application in the locales it
// supports. The zero value is not useful: set at least Name and
// LocaleDir. A TextDomain must not be copied after first use.
type TextDomain struct {
	// Name is the catalog file prefix, "app" for app_fr.ts.
	Name string
	// LocaleDir is the directory holding the catalogs.
	LocaleDir string
	// PathResolver defaults to DefaultResolver.
	PathResolver PathResolver
	// SourceLanguage is the language source strings are written in. It
	// is the default match of Match.
	SourceLanguage string
	// IncludeUnfinished makes translations marked unfinished usable.
	IncludeUnfinished bool
	// StrictMissing logs each missing translation once and wraps the
	// returned source text in ⟦⟧ markers.
	StrictMissing bool

	mu      sync.Mutex
	cache   map[string]*cachedCatalog
	missing sync.Map
}

type cachedCatalog struct {
	once sync.Once
	cat  *tscatalog
	err  error
}

// NewTranslations sets up a TextDomain for the catalogs of domain found
// under root.
func NewTranslations(root string, domain string, resolver PathResolver) *TextDomain {
	return &TextDomain{
		Name:         domain,
		LocaleDir:    root,
		PathResolver: resolver,
	}
}

func (t *TextDomain) resolve(locale string) string {
	resolver := t.PathResolver
	if resolver == nil {
		resolver = DefaultResolver
	}
	return resolver(t.LocaleDir, locale, t.Name)
}

func (t *TextDomain) cached(locale string) *cachedCatalog {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cache == nil {
		t.cache = make(map[string]*cachedCatalog)
	}
	c, ok := t.cache[locale]
	if !ok {
		c = new(cachedCatalog)
		t.cache[locale] = c
	}
	return c
}

// load returns the catalog for locale, reading it on first use. A
// missing file is not an error; the catalog is simply nil. Failures are
// remembered and never retried.
func (t *TextDomain) load(locale string) (*tscatalog, error) {
	c := t.cached(locale)
	c.once.Do(func() {
		c.cat, c.err = t.read(locale)
	})
	return c.cat, c.err
}

func (t *TextDomain) read(locale string) (*tscatalog, error) {
	path := t.resolve(locale)
	f, err := ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		Logger.Warn().
			Err(err).
			Str("locale", locale).
			Str("path", path).
			Msg("Skipping unreadable catalog")
		return nil, err
	}
	if f.Language == "" {
		f.Language = locale
	}
	cat := newTSCatalog(f, t.IncludeUnfinished)
	Logger.Info().
		Str("locale", locale).
		Str("path", path).
		Int("messages", cat.size()).
		Msg("Loaded catalog")
	return cat, nil
}

// Preload reads the catalogs of the given locales concurrently so that
// later calls to Locale do no IO for them. It returns the first load
// failure; the failed locales stay unavailable and the others are
// loaded regardless.
func (t *TextDomain) Preload(locales ...string) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, locale := range locales {
		locale := locale
		g.Go(func() error {
			_, err := t.load(locale)
			return err
		})
	}
	return g.Wait()
}

// Locale returns the catalog translations for a list of locales.
//
// If translations are not found in the first locale, each subsequent
// one is consulted until a match is found. If no match is found, the
// source strings are returned.
func (t *TextDomain) Locale(languages ...string) Catalog {
	var cats []*tscatalog
	for _, lang := range normalizeLanguages(languages) {
		if cat, _ := t.load(lang); cat != nil {
			cats = append(cats, cat)
		}
	}
	c := Catalog{cats: cats}
	if t.StrictMissing {
		c.missing = &t.missing
	}
	return c
}

// UserLocale returns the catalog translations for the user's locale.
func (t *TextDomain) UserLocale() Catalog {
	return t.Locale(UserLanguages()...)
}

// availableLocale is a catalog file found on disk.
type availableLocale struct {
	tag    language.Tag
	locale string
}

func (t *TextDomain) scan() ([]availableLocale, error) {
	entries, err := os.ReadDir(t.LocaleDir)
	if err != nil {
		return nil, fmt.Errorf("cannot list catalogs: %w", err)
	}

	prefix := t.Name + "_"
	seen := make(map[string]bool)
	var found []availableLocale
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, suffix := range compressedSuffixes {
			name = strings.TrimSuffix(name, suffix)
		}
		if !strings.HasSuffix(name, ".ts") {
			continue
		}
		locale := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".ts")
		if seen[locale] {
			continue
		}
		seen[locale] = true

		tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping invalid locale file")
			continue
		}
		found = append(found, availableLocale{tag: tag, locale: locale})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].tag.String() < found[j].tag.String() })
	return found, nil
}

// Available returns the BCP 47 tags of the catalogs present in
// LocaleDir, sorted by tag string. Only files following the
// <domain>_<locale>.ts naming, optionally compressed, are considered.
func (t *TextDomain) Available() ([]language.Tag, error) {
	found, err := t.scan()
	if err != nil {
		return nil, err
	}
	tags := make([]language.Tag, len(found))
	for i, a := range found {
		tags[i] = a.tag
	}
	return tags, nil
}

// Match picks the best available catalog for a list of user
// preferences, each a locale ("pt_PT"), a BCP 47 tag ("pt-BR") or an
// Accept-Language value. The source language is the default: when it
// wins, or nothing matches, the returned catalog may be empty and
// lookups yield the source strings.
func (t *TextDomain) Match(preferences ...string) (Catalog, language.Tag) {
	found, err := t.scan()
	if err != nil {
		Logger.Warn().Err(err).Str("dir", t.LocaleDir).Msg("Cannot match locale")
	}

	var (
		tags    []language.Tag
		locales []string
	)
	if t.SourceLanguage != "" {
		if base, err := language.Parse(strings.ReplaceAll(t.SourceLanguage, "_", "-")); err == nil {
			tags = append(tags, base)
			locales = append(locales, t.SourceLanguage)
		}
	}
	for _, a := range found {
		if len(tags) > 0 && a.tag == tags[0] {
			// The source language has its own catalog.
			locales[0] = a.locale
			continue
		}
		tags = append(tags, a.tag)
		locales = append(locales, a.locale)
	}
	if len(tags) == 0 {
		return t.Locale(), language.Und
	}

	normalized := make([]string, len(preferences))
	for i, p := range preferences {
		normalized[i] = strings.ReplaceAll(p, "_", "-")
	}
	matcher := language.NewMatcher(tags)
	tag, idx := language.MatchStrings(matcher, normalized...)
	return t.Locale(locales[idx]), tag
}
