package linguist

import (
	"reflect"
	"testing"
)

func assert_equal(t *testing.T, expected string, got string) {
	t.Helper()
	if expected != got {
		t.Logf("%q != %q", expected, got)
		t.Fail()
	}
}

func assertDeepEqual(t *testing.T, expected, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Logf("%#v != %#v", expected, got)
		t.Fail()
	}
}

func mustParse(t *testing.T, doc string) *File {
	t.Helper()
	f, err := ParseTSBytes([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return f
}
