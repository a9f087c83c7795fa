package linguist

import (
	"testing"
)

func TestCheck(t *testing.T) {
	f := mustParse(t, `<TS version="2.1" language="ar_SA">
<context>
    <name>Application</name>
    <message>
        <source>Client {0} créé (ID: {1}).</source>
        <translation>Client {0} créé.</translation>
    </message>
    <message>
        <source>Annuler</source>
        <translation>A</translation>
    </message>
    <message>
        <source>Annuler</source>
        <translation>B</translation>
    </message>
    <message numerus="yes">
        <source>%n document(s)</source>
        <translation>
            <numerusform>un</numerusform>
            <numerusform>plusieurs</numerusform>
        </translation>
    </message>
    <message>
        <source>Vide</source>
        <translation></translation>
    </message>
    <message>
        <source>Brouillon {0}</source>
        <translation type="unfinished">Brouillon</translation>
    </message>
    <message>
        <source>Ancien {0}</source>
        <translation type="obsolete">Ancien</translation>
    </message>
    <message>
        <source>Ordre {0} {1}</source>
        <translation>{1} {0}</translation>
    </message>
</context>
</TS>`)

	problems := Check(f)
	var kinds []ProblemKind
	for _, p := range problems {
		kinds = append(kinds, p.Kind)
	}
	assertDeepEqual(t, []ProblemKind{
		PlaceholderMismatch,
		ConflictingDuplicate,
		NumerusFormCount,
		EmptyTranslation,
		PlaceholderMismatch,
	}, kinds)

	assert_equal(t, `placeholders: Application: "Client {0} créé (ID: {1}).": source uses [{0} {1}], translation uses [{0}]`, problems[0].String())
	assert_equal(t, `translated both "A" and "B"`, problems[1].Detail)
	assert_equal(t, "has 2 forms, ar_SA needs 6", problems[2].Detail)
	assert_equal(t, "Brouillon {0}", problems[4].Source)
}

func TestCheckTestdata(t *testing.T) {
	for _, name := range []string{"app_fr.ts", "app_ar.ts", "app_es.ts"} {
		f, err := ReadFile("testdata/" + name)
		if err != nil {
			t.Fatal(err)
		}
		if problems := Check(f); len(problems) != 0 {
			t.Errorf("%s: unexpected problems: %v", name, problems)
		}
	}
}

func TestStats(t *testing.T) {
	f, err := ReadFile("testdata/app_ar.ts")
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, Stats{
		Contexts:   2,
		Messages:   8,
		Finished:   6,
		Unfinished: 1,
		Obsolete:   1,
	}, f.Stats())

	f, err = ReadFile("testdata/app_es.ts")
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, Stats{
		Contexts:   1,
		Messages:   6,
		Finished:   4,
		Unfinished: 1,
		Vanished:   1,
	}, f.Stats())
}
