package pluralforms

import "strings"

// Rule is the plural rule of a language: how many numerus forms its
// translations carry and which one to pick for a given count.
type Rule struct {
	Forms int
	Expr  Expression
}

// Index returns the numerus form index for n, clamped to the number of
// forms the rule declares.
func (r Rule) Index(n int) int {
	i := r.Expr.Eval(n)
	if i < 0 {
		return 0
	}
	if i >= r.Forms {
		return r.Forms - 1
	}
	return i
}

type ruleSource struct {
	forms int
	expr  string
}

const (
	germanic = "n != 1"
	slavic   = "n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2"
)

var ruleSources = map[string]ruleSource{
	"ar": {6, "n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5"},
	"cs": {3, "n==1 ? 0 : n>=2 && n<=4 ? 1 : 2"},
	"da": {2, germanic},
	"de": {2, germanic},
	"el": {2, germanic},
	"en": {2, germanic},
	"es": {2, germanic},
	"fi": {2, germanic},
	"fr": {2, "n > 1"},
	"he": {2, germanic},
	"hu": {2, germanic},
	"id": {1, "0"},
	"it": {2, germanic},
	"ja": {1, "0"},
	"ko": {1, "0"},
	"nl": {2, germanic},
	"pl": {3, "n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2"},
	"pt": {2, germanic},
	"ro": {3, "n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2"},
	"ru": {3, slavic},
	"sk": {3, "n==1 ? 0 : n>=2 && n<=4 ? 1 : 2"},
	"sv": {2, germanic},
	"tr": {2, germanic},
	"uk": {3, slavic},
	"vi": {1, "0"},
	"zh": {1, "0"},
}

var germanicRule = mustRule(ruleSource{2, germanic})

func mustRule(src ruleSource) Rule {
	expr, err := Compile(src.expr)
	if err != nil {
		panic(err)
	}
	return Rule{Forms: src.forms, Expr: expr}
}

var compiledRules = func() map[string]Rule {
	m := make(map[string]Rule, len(ruleSources))
	for lang, src := range ruleSources {
		m[lang] = mustRule(src)
	}
	return m
}()

// ForLanguage returns the plural rule for a locale such as "ru_RU",
// "pt-BR" or "ar". Unknown languages use the Germanic rule (one, other).
func ForLanguage(locale string) Rule {
	base := strings.ToLower(locale)
	if i := strings.IndexAny(base, "_-.@"); i >= 0 {
		base = base[:i]
	}
	if r, ok := compiledRules[base]; ok {
		return r
	}
	return germanicRule
}
