package linguist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

func testDomain() *TextDomain {
	return NewTranslations("testdata", "app", nil)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Logger
	Logger = zerolog.New(&buf)
	t.Cleanup(func() { Logger = old })
	return &buf
}

func TestTr(t *testing.T) {
	tr := testDomain()

	ar := tr.Locale("ar_SA")
	assert_equal(t, "ar_SA", ar.Language())
	assert_equal(t, "[AR] Annuler", ar.Tr("Application", "Annuler"))
	assert_equal(t, "[AR] Annuler le produit", ar.Tr("ProductDialog", "Annuler"))
	assert_equal(t, "[AR] Client Acme créé (ID: 42).", ar.Tr("Application", "Client {0} créé (ID: {1}).", "Acme", 42))

	// fallbacks to the source text
	assert_equal(t, "Annuler", ar.Tr("Unknown", "Annuler"))
	assert_equal(t, "Inconnu {0}", ar.Tr("Application", "Inconnu {0}"))
	assert_equal(t, "Inconnu 7", ar.Tr("Application", "Inconnu {0}", 7))
	assert_equal(t, "Compiler PDF", ar.Tr("Application", "Compiler PDF"))
	assert_equal(t, "Envoyer par email", ar.Tr("Application", "Envoyer par email"))

	es := tr.Locale("es")
	assert_equal(t, "Cliente 42 creado: Acme.", es.Tr("Application", "Client {0} créé (ID: {1}).", "Acme", 42))
	assert_equal(t, `Error al cargar las plantillas:\n{0}`, es.Tr("Application", `Erreur de chargement des modèles:\n{0}`))
	assert_equal(t, "Exporter CSV", es.Tr("Application", "Exporter CSV"))
}

func TestTrDisambiguation(t *testing.T) {
	ar := testDomain().Locale("ar")
	assert_equal(t, "[AR] فتح", ar.TrD("Application", "Ouvrir", "menu"))
	assert_equal(t, "Ouvrir", ar.Tr("Application", "Ouvrir"))
	assert_equal(t, "Ouvrir", ar.TrD("Application", "Ouvrir", "button"))
}

func TestLookup(t *testing.T) {
	ar := testDomain().Locale("ar")

	text, ok := ar.Lookup("Application", "Client {0} créé (ID: {1}).", "")
	if !ok {
		t.Fatal("expected a translation")
	}
	assert_equal(t, "[AR] Client {0} créé (ID: {1}).", text)

	text, ok = ar.Lookup("Application", "Compiler PDF", "")
	if ok {
		t.Fatalf("unfinished translation returned: %q", text)
	}
}

func TestIncludeUnfinished(t *testing.T) {
	tr := testDomain()
	tr.IncludeUnfinished = true

	assert_equal(t, "[AR] Compiler PDF", tr.Locale("ar").Tr("Application", "Compiler PDF"))
	// an empty unfinished translation is never used
	assert_equal(t, "Compiler PDF", tr.Locale("es").Tr("Application", "Compiler PDF"))
	// obsolete stays excluded
	assert_equal(t, "Envoyer par email", tr.Locale("ar").Tr("Application", "Envoyer par email"))
}

func TestTrN(t *testing.T) {
	tr := testDomain()

	ar := tr.Locale("ar")
	for _, tc := range []struct {
		n        int
		expected string
	}{
		{0, "[AR] لا مستندات"},
		{1, "[AR] مستند واحد"},
		{2, "[AR] مستندان"},
		{5, "[AR] 5 مستندات"},
		{11, "[AR] 11 مستندًا"},
		{100, "[AR] 100 مستند"},
	} {
		assert_equal(t, tc.expected, ar.TrN("Application", "%n document(s)", "", tc.n))
	}

	es := tr.Locale("es")
	assert_equal(t, "1 documento", es.TrN("Application", "%n document(s)", "", 1))
	assert_equal(t, "3 documentos", es.TrN("Application", "%n document(s)", "", 3))

	fr := tr.Locale("fr")
	assert_equal(t, "3 document(s)", fr.TrN("Application", "%n document(s)", "", 3))

	// the rule of the catalog holding the translation applies
	chain := tr.Locale("fr", "ar")
	assert_equal(t, "[AR] مستندان", chain.TrN("Application", "%n document(s)", "", 2))

	// a plain message used as numerus
	assert_equal(t, "[AR] Annuler", ar.TrN("Application", "Annuler", "", 4))
}

func TestLocaleChain(t *testing.T) {
	tr := testDomain()

	c := tr.Locale("es", "ar")
	assertDeepEqual(t, []string{"es_ES", "ar_SA"}, c.Languages())
	assert_equal(t, "Cancelar", c.Tr("Application", "Annuler"))
	assert_equal(t, "[AR] Erreur DB", c.Tr("Application", "Erreur DB"))
	assert_equal(t, "Compiler PDF", c.Tr("Application", "Compiler PDF"))

	// C ends the list
	c = tr.Locale("xx", "C", "ar")
	if len(c.Languages()) != 0 {
		t.Fatalf("unexpected catalogs: %v", c.Languages())
	}
	assert_equal(t, "", c.Language())
	assert_equal(t, "Annuler", c.Tr("Application", "Annuler"))
}

func TestMalformedCatalogIsSkipped(t *testing.T) {
	logs := captureLogs(t)
	tr := testDomain()

	c := tr.Locale("ru", "fr")
	assertDeepEqual(t, []string{"fr_FR"}, c.Languages())
	assert_equal(t, "Annuler", c.Tr("Application", "Annuler"))
	if !strings.Contains(logs.String(), "Skipping unreadable catalog") {
		t.Fatalf("no warning logged: %s", logs)
	}

	if err := tr.Preload("ru"); err == nil {
		t.Fatal("expected an error for the malformed catalog")
	}
	if err := tr.Preload("ar", "es", "xx"); err != nil {
		t.Fatal(err)
	}
}

func TestCompressedCatalog(t *testing.T) {
	tr := testDomain()
	c := tr.Locale("pt")
	assert_equal(t, "pt_PT", c.Language())
	assert_equal(t, "Cancelar (pt)", c.Tr("Application", "Annuler"))
}

func TestLanguageDefaultsToLocale(t *testing.T) {
	dir := t.TempDir()
	doc := `<TS version="2.1"><context><name>A</name><message><source>Yes</source><translation>Ja</translation></message></context></TS>`
	if err := os.WriteFile(filepath.Join(dir, "app_de.ts"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	c := NewTranslations(dir, "app", nil).Locale("de_DE.UTF-8")
	assert_equal(t, "de", c.Language())
	assert_equal(t, "Ja", c.Tr("A", "Yes"))
}

func TestPathResolver(t *testing.T) {
	var asked []string
	tr := NewTranslations("testdata", "app", func(root, locale, domain string) string {
		asked = append(asked, locale)
		return filepath.Join(root, domain+"_"+locale+".ts")
	})
	tr.Locale("fr_FR.UTF-8")
	assertDeepEqual(t, []string{"fr_FR.UTF-8", "fr_FR.utf8", "fr_FR", "fr.UTF-8", "fr.utf8", "fr"}, asked)

	// loads happen once per locale
	tr.Locale("fr")
	assertDeepEqual(t, 6, len(asked))
}

func TestUserLocale(t *testing.T) {
	restore := mockGetenv(map[string]string{"LANGUAGE": "es:ar", "LANG": "fr_FR.UTF-8"})
	defer restore()

	c := testDomain().UserLocale()
	assertDeepEqual(t, []string{"es_ES", "ar_SA"}, c.Languages())
}

func TestStrictMissing(t *testing.T) {
	logs := captureLogs(t)
	tr := testDomain()
	tr.StrictMissing = true

	c := tr.Locale("ar")
	assert_equal(t, "[AR] Annuler", c.Tr("Application", "Annuler"))
	assert_equal(t, "⟦Inconnu⟧", c.Tr("Application", "Inconnu"))
	assert_equal(t, "⟦Inconnu⟧", c.Tr("Application", "Inconnu"))
	assert_equal(t, "⟦Bonjour Bob⟧", c.Tr("Application", "Bonjour {0}", "Bob"))
	assert_equal(t, "⟦3 fichiers⟧", c.TrN("Application", "%n fichiers", "", 3))

	if n := strings.Count(logs.String(), "Missing translation"); n != 3 {
		t.Fatalf("expected 3 warnings, got %d:\n%s", n, logs)
	}
}

func TestAvailable(t *testing.T) {
	tags, err := testDomain().Available()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tag := range tags {
		got = append(got, tag.String())
	}
	assertDeepEqual(t, []string{"ar", "es", "fr", "pt", "ru"}, got)

	if _, err := NewTranslations("testdata/nope", "app", nil).Available(); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestMatch(t *testing.T) {
	tr := testDomain()
	tr.SourceLanguage = "fr_FR"

	c, tag := tr.Match("es-MX")
	base, _ := tag.Base()
	assert_equal(t, "es", base.String())
	assert_equal(t, "es_ES", c.Language())

	c, tag = tr.Match("ar-EG,pt;q=0.8")
	base, _ = tag.Base()
	assert_equal(t, "ar", base.String())
	assert_equal(t, "[AR] Annuler", c.Tr("Application", "Annuler"))

	c, tag = tr.Match("pt_PT")
	base, _ = tag.Base()
	assert_equal(t, "pt", base.String())
	assert_equal(t, "Cancelar (pt)", c.Tr("Application", "Annuler"))

	// no match: the source language
	c, tag = tr.Match("de")
	assert_equal(t, language.MustParse("fr-FR").String(), tag.String())
	assert_equal(t, "fr_FR", c.Language())
}

func TestConcurrentLookups(t *testing.T) {
	tr := testDomain()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locales := []string{"ar", "es", "fr", "pt"}
			c := tr.Locale(locales[i%len(locales)])
			if got := c.Tr("Application", "Annuler"); got == "" {
				t.Errorf("empty translation for %s", locales[i%len(locales)])
			}
		}(i)
	}
	wg.Wait()
}

func TestLoadIsIdempotent(t *testing.T) {
	for _, name := range []string{"app_fr.ts", "app_ar.ts", "app_es.ts", "app_pt.ts"} {
		first, err := ReadFile("testdata/" + name)
		if err != nil {
			t.Fatal(err)
		}
		second, err := ReadFile("testdata/" + name)
		if err != nil {
			t.Fatal(err)
		}
		assertDeepEqual(t, newTSCatalog(first, false), newTSCatalog(second, false))
	}

	tr := testDomain()
	a, err := tr.load("ar")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := tr.load("ar")
	if a != b {
		t.Fatal("catalog loaded twice")
	}
}

func TestEscapesPreserved(t *testing.T) {
	fr := testDomain().Locale("fr")
	assert_equal(t, `Erreur de chargement des modèles:\nboom`, fr.Tr("Application", `Erreur de chargement des modèles:\n{0}`, "boom"))
	assert_equal(t, "Langue de l'interface (redémarrage requis)", fr.Tr("SettingsDialog", "Langue de l'interface (redémarrage requis)"))
	assert_equal(t, "Client Acme créé (ID: 42).", fr.Tr("Application", "Client {0} créé (ID: {1}).", "Acme", 42))
}
