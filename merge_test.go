package linguist

import (
	"testing"
)

const existingCatalog = `<TS version="2.1" language="es_ES" sourcelanguage="fr_FR">
<context>
    <name>Application</name>
    <message>
        <location filename="old.py" line="1"/>
        <source>Annuler</source>
        <translatorcomment>verbe</translatorcomment>
        <translation>Cancelar</translation>
    </message>
    <message>
        <source>Supprimé</source>
        <translation>Borrado</translation>
    </message>
    <message>
        <source>Jamais traduit</source>
        <translation type="unfinished"></translation>
    </message>
    <message>
        <source>Revenu</source>
        <translation type="obsolete">Vuelto</translation>
    </message>
</context>
</TS>`

const extractedCatalog = `<TS version="2.1">
<context>
    <name>Application</name>
    <message>
        <location filename="main.py" line="10"/>
        <source>Annuler</source>
        <extracomment>bouton</extracomment>
        <translation type="unfinished"></translation>
    </message>
    <message>
        <location filename="main.py" line="12"/>
        <source>Nouveau</source>
        <translation type="unfinished"></translation>
    </message>
    <message>
        <source>Revenu</source>
        <translation type="unfinished"></translation>
    </message>
</context>
<context>
    <name>ProductDialog</name>
    <message>
        <source>Prix</source>
        <translation type="unfinished"></translation>
    </message>
</context>
</TS>`

func TestMerge(t *testing.T) {
	existing := mustParse(t, existingCatalog)
	extracted := mustParse(t, extractedCatalog)

	merged := Merge(existing, extracted, MergeOptions{})
	assert_equal(t, "es_ES", merged.Language)
	assert_equal(t, "fr_FR", merged.SourceLanguage)
	if len(merged.Contexts) != 2 {
		t.Fatalf("expected 2 contexts, got %d", len(merged.Contexts))
	}

	app := merged.Contexts[0].Messages
	if len(app) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(app))
	}
	assertDeepEqual(t, &Message{
		Source:            "Annuler",
		ExtraComment:      "bouton",
		TranslatorComment: "verbe",
		Translation:       "Cancelar",
		Status:            Finished,
		Locations:         []Location{{Filename: "main.py", Line: "10"}},
	}, app[0])
	assert_equal(t, "Nouveau", app[1].Source)
	assertDeepEqual(t, Unfinished, app[1].Status)

	// a retired message that reappears needs review
	assert_equal(t, "Revenu", app[2].Source)
	assert_equal(t, "Vuelto", app[2].Translation)
	assertDeepEqual(t, Unfinished, app[2].Status)

	assert_equal(t, "Supprimé", app[3].Source)
	assertDeepEqual(t, Obsolete, app[3].Status)
	assert_equal(t, "Jamais traduit", app[4].Source)
	assertDeepEqual(t, Vanished, app[4].Status)

	assert_equal(t, "ProductDialog", merged.Contexts[1].Name)

	// the inputs are left alone
	assertDeepEqual(t, Finished, existing.Contexts[0].Messages[1].Status)
	assert_equal(t, "old.py", existing.Contexts[0].Messages[0].Locations[0].Filename)
}

func TestMergeOptions(t *testing.T) {
	existing := mustParse(t, existingCatalog)
	extracted := mustParse(t, extractedCatalog)

	merged := Merge(existing, extracted, MergeOptions{NoObsolete: true, NoLocations: true})
	app := merged.Contexts[0].Messages
	if len(app) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(app))
	}
	for _, m := range app {
		if len(m.Locations) != 0 {
			t.Fatalf("unexpected locations for %q", m.Source)
		}
	}
}

func TestMergeIntoNothing(t *testing.T) {
	extracted := mustParse(t, extractedCatalog)
	extracted.SourceLanguage = "fr_FR"

	merged := Merge(nil, extracted, MergeOptions{})
	assert_equal(t, "fr_FR", merged.SourceLanguage)
	assert_equal(t, "", merged.Language)
	stats := merged.Stats()
	assertDeepEqual(t, Stats{Contexts: 2, Messages: 4, Unfinished: 4}, stats)
}
