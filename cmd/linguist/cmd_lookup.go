package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cdmanager/go-linguist"
)

type lookupCommand struct {
	Locales []string `short:"l" long:"locale" value-name:"LOCALE" description:"locale to translate to, repeat for a fallback chain (default: from the environment)"`

	Disambiguation string `short:"d" long:"disambiguation" value-name:"COMMENT" description:"disambiguation comment of the message"`

	Count *int `short:"n" long:"count" value-name:"N" description:"translate a numerus message for N"`

	Positional struct {
		Context string   `positional-arg-name:"CONTEXT" required:"yes"`
		Source  string   `positional-arg-name:"SOURCE" required:"yes"`
		Args    []string `positional-arg-name:"ARG"`
	} `positional-args:"yes"`
}

func (x *lookupCommand) catalog(domain *linguist.TextDomain) linguist.Catalog {
	if len(x.Locales) == 0 {
		return domain.UserLocale()
	}
	return domain.Locale(x.Locales...)
}

func (x *lookupCommand) Execute(args []string) error {
	domain := cfg.TextDomain()
	if err := domain.Preload(cfg.Catalog.Languages...); err != nil {
		// unreadable catalogs are skipped, lookups fall back to the sources
		log.Debug().Err(err).Msg("Preload incomplete")
	}
	c := x.catalog(domain)

	fmtArgs := make([]interface{}, len(x.Positional.Args))
	for i, arg := range x.Positional.Args {
		fmtArgs[i] = arg
	}

	p := x.Positional
	var text string
	if x.Count != nil {
		text = c.TrN(p.Context, p.Source, x.Disambiguation, *x.Count, fmtArgs...)
	} else {
		text = c.TrD(p.Context, p.Source, x.Disambiguation, fmtArgs...)
	}
	_, err := fmt.Fprintln(Stdout, text)
	return err
}
