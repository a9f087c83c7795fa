package linguist

import (
	"bytes"
	"testing"
)

func TestParseLocaleAlias(t *testing.T) {
	buf := bytes.NewBufferString(`
# Comment
      # also a comment
one-word-ignored
french          fr_FR.ISO-8859-1
turkish         tr_TR.ISO-8859-9
`)
	aliases, err := parseLocaleAlias(buf)
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, map[string]string{
		"french":  "fr_FR.ISO-8859-1",
		"turkish": "tr_TR.ISO-8859-9",
	}, aliases)
}

func TestNormalizeCodeset(t *testing.T) {
	assert_equal(t, ".utf8", normalizeCodeset(".UTF-8"))
	assert_equal(t, ".utf8", normalizeCodeset(".utf8"))

	assert_equal(t, ".iso88591", normalizeCodeset(".ISO-8859-1"))
	assert_equal(t, ".iso88591", normalizeCodeset(".iso-8859-1"))
	assert_equal(t, ".iso88591", normalizeCodeset(".iso88591"))
	assert_equal(t, ".iso88591", normalizeCodeset(".8859-1"))
	assert_equal(t, ".iso88591", normalizeCodeset(".88591"))
}

func TestExpandLocale(t *testing.T) {
	assertDeepEqual(t, []string{"fr"}, expandLocale("fr"))
	assertDeepEqual(t, []string{"fr_FR", "fr"}, expandLocale("fr_FR"))
	assertDeepEqual(t, []string{"pt_BR", "pt"}, expandLocale("pt-BR"))
	assertDeepEqual(t, []string{"fr_FR.UTF-8", "fr_FR.utf8", "fr_FR", "fr.UTF-8", "fr.utf8", "fr"}, expandLocale("fr_FR.UTF-8"))
	assertDeepEqual(t, []string{"fr_FR.utf8", "fr_FR", "fr.utf8", "fr"}, expandLocale("fr_FR.utf8"))
	assertDeepEqual(t, []string{"sr_RS.UTF-8@latin", "sr_RS.utf8@latin", "sr_RS@latin", "sr.UTF-8@latin", "sr.utf8@latin", "sr@latin", "sr_RS.UTF-8", "sr_RS.utf8", "sr_RS", "sr.UTF-8", "sr.utf8", "sr"}, expandLocale("sr_RS.UTF-8@latin"))
}

func mockGetenv(env map[string]string) (restore func()) {
	old := osGetenv
	osGetenv = func(name string) string {
		return env[name]
	}
	return func() {
		osGetenv = old
	}
}

func mockAliases(m map[string]string) (restore func()) {
	// make sure the system alias file is never read afterwards
	aliasesOnce.Do(func() {})
	old := aliases
	aliases = m
	return func() {
		aliases = old
	}
}

func TestUserLanguages(t *testing.T) {
	env := map[string]string{}
	restore := mockGetenv(env)
	defer restore()

	// By default, no locale is set
	assertDeepEqual(t, []string(nil), UserLanguages())

	// If LANG is set, use that
	env["LANG"] = "fr_FR@lang"
	assertDeepEqual(t, []string{"fr_FR@lang"}, UserLanguages())

	// LC_MESSAGES overrides LANG
	env["LC_MESSAGES"] = "fr_FR@messages"
	assertDeepEqual(t, []string{"fr_FR@messages"}, UserLanguages())

	// LC_ALL overrides LC_MESSAGES
	env["LC_ALL"] = "fr_FR.UTF-8"
	assertDeepEqual(t, []string{"fr_FR.UTF-8"}, UserLanguages())

	// LANGUAGE overrides LC_ALL, and can specify multiple locales
	env["LANGUAGE"] = "ar_SA:es_ES::fr"
	assertDeepEqual(t, []string{"ar_SA", "es_ES", "fr"}, UserLanguages())
}

func TestNormalizeLanguages(t *testing.T) {
	defer mockAliases(map[string]string{"spanish": "es_ES.ISO-8859-1"})()

	assertDeepEqual(t, []string{"ar_SA", "ar", "ar_EG", "fr"}, normalizeLanguages([]string{"ar_SA", "ar_EG", "ar", "fr", "C", "es"}))
	assertDeepEqual(t, []string{"es_ES.ISO-8859-1", "es_ES.iso88591", "es_ES", "es.ISO-8859-1", "es.iso88591", "es"}, normalizeLanguages([]string{"spanish"}))
	assertDeepEqual(t, []string(nil), normalizeLanguages([]string{"POSIX", "fr"}))
}
