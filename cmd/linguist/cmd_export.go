package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cdmanager/go-linguist"
)

type exportCommand struct {
	Format string `short:"F" long:"format" default:"csv" value-name:"FORMAT" description:"output format (csv, po, yaml)"`

	Output string `short:"o" long:"output" value-name:"FILE" description:"output to specified file"`

	Positional struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

func (x *exportCommand) Execute(args []string) error {
	f, err := linguist.ReadFile(x.Positional.File)
	if err != nil {
		return err
	}
	registry := exporters()
	data, err := registry.Export(x.Format, f)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Formats(), ", "))
	}
	if x.Output == "" {
		_, err = Stdout.Write(data)
		return err
	}
	return os.WriteFile(x.Output, data, 0o644)
}
