package linguist

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	osGetenv = os.Getenv

	localeAliasPath = "/usr/share/locale/locale.alias"
	aliasesOnce     sync.Once
	aliases         map[string]string
)

// UserLanguages returns the user's preferred languages from the
// environment: LANGUAGE (a colon separated list) takes precedence over
// LC_ALL, LC_MESSAGES and LANG, in that order.
func UserLanguages() []string {
	if language := osGetenv("LANGUAGE"); language != "" {
		var langs []string
		for _, lang := range strings.Split(language, ":") {
			if lang != "" {
				langs = append(langs, lang)
			}
		}
		return langs
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang := osGetenv(name); lang != "" {
			return []string{lang}
		}
	}
	return nil
}

// parseLocaleAlias reads a locale.alias file: "alias locale" per line,
// with '#' comments.
func parseLocaleAlias(r io.Reader) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		result[fields[0]] = fields[1]
	}
	return result, scanner.Err()
}

func resolveAlias(lang string) string {
	aliasesOnce.Do(func() {
		f, err := os.Open(localeAliasPath)
		if err != nil {
			return
		}
		defer f.Close()
		aliases, _ = parseLocaleAlias(f)
	})
	if target, ok := aliases[lang]; ok {
		return target
	}
	return lang
}

// normalizeCodeset lower-cases a ".codeset" suffix and strips
// punctuation, glibc style: ".UTF-8" becomes ".utf8" and a numeric
// ".8859-1" becomes ".iso88591".
func normalizeCodeset(codeset string) string {
	var b strings.Builder
	digits := true
	for _, r := range strings.TrimPrefix(codeset, ".") {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			digits = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			digits = false
			b.WriteRune(r - 'A' + 'a')
		}
	}
	if digits {
		return ".iso" + b.String()
	}
	return "." + b.String()
}

// expandLocale lists the names to try for a locale, most specific
// first: "fr_FR.UTF-8" gives fr_FR.UTF-8, fr_FR.utf8, fr_FR, fr.UTF-8,
// fr.utf8 and fr. A BCP 47 hyphen ("pt-BR") is read as an underscore.
func expandLocale(locale string) []string {
	lang := locale
	var territory, codeset, modifier string
	if i := strings.IndexByte(lang, '@'); i >= 0 {
		lang, modifier = lang[:i], lang[i:]
	}
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		lang, codeset = lang[:i], lang[i:]
	}
	if i := strings.IndexAny(lang, "_-"); i >= 0 {
		lang, territory = lang[:i], "_"+lang[i+1:]
	}

	modifiers := []string{modifier}
	if modifier != "" {
		modifiers = append(modifiers, "")
	}
	territories := []string{territory}
	if territory != "" {
		territories = append(territories, "")
	}
	codesets := []string{codeset}
	if codeset != "" {
		if normalized := normalizeCodeset(codeset); normalized != codeset {
			codesets = append(codesets, normalized)
		}
		codesets = append(codesets, "")
	}

	var result []string
	for _, m := range modifiers {
		for _, t := range territories {
			for _, c := range codesets {
				result = append(result, lang+t+c+m)
			}
		}
	}
	return result
}

// normalizeLanguages expands and de-duplicates a preference list. The
// "C" and "POSIX" locales end the list: everything after them would
// never be consulted.
func normalizeLanguages(languages []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, lang := range languages {
		if lang == "C" || lang == "POSIX" {
			break
		}
		for _, l := range expandLocale(resolveAlias(lang)) {
			if !seen[l] {
				seen[l] = true
				result = append(result, l)
			}
		}
	}
	return result
}
