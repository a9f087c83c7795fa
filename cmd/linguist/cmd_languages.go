package main

import (
	"fmt"
)

type languagesCommand struct {
	Match []string `long:"match" value-name:"PREFERENCE" description:"print the best match for PREFERENCE (a locale, tag or Accept-Language value) instead"`
}

func (x *languagesCommand) Execute(args []string) error {
	domain := cfg.TextDomain()
	if len(x.Match) > 0 {
		c, tag := domain.Match(x.Match...)
		_, err := fmt.Fprintf(Stdout, "%s\t%s\n", tag, c.Language())
		return err
	}

	tags, err := domain.Available()
	if err != nil {
		return err
	}
	for _, tag := range tags {
		fmt.Fprintln(Stdout, tag)
	}
	return nil
}
