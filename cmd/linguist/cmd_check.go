package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cdmanager/go-linguist"
)

type catalogFiles struct {
	Files []string `positional-arg-name:"FILE" required:"1"`
}

type checkCommand struct {
	Positional catalogFiles `positional-args:"yes"`
}

func (x *checkCommand) Execute(args []string) error {
	total := 0
	for _, path := range x.Positional.Files {
		f, err := linguist.ReadFile(path)
		if err != nil {
			return err
		}
		for _, p := range linguist.Check(f) {
			fmt.Fprintf(Stdout, "%s: %s\n", path, p)
			total++
		}
	}
	if total > 0 {
		return fmt.Errorf("%d problems found", total)
	}
	return nil
}

type statsCommand struct {
	Positional catalogFiles `positional-args:"yes"`
}

func (x *statsCommand) Execute(args []string) error {
	w := tabwriter.NewWriter(Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tLANGUAGE\tCONTEXTS\tMESSAGES\tFINISHED\tUNFINISHED\tOBSOLETE\tVANISHED")
	for _, path := range x.Positional.Files {
		f, err := linguist.ReadFile(path)
		if err != nil {
			return err
		}
		s := f.Stats()
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			path, f.Language, s.Contexts, s.Messages, s.Finished, s.Unfinished, s.Obsolete, s.Vanished)
	}
	return w.Flush()
}
