package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/cdmanager/go-linguist/internal/config"
	"github.com/cdmanager/go-linguist/internal/export"
	"github.com/cdmanager/go-linguist/internal/export/csv"
	"github.com/cdmanager/go-linguist/internal/export/po"
	"github.com/cdmanager/go-linguist/internal/export/yaml"
)

var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

type globalOptions struct {
	Config   string `long:"config" value-name:"FILE" description:"read configuration from FILE"`
	LogLevel string `long:"log-level" value-name:"LEVEL" description:"override the configured log level"`
}

var (
	opts globalOptions
	cfg  config.Config
)

func exporters() *export.Registry {
	r := export.New()
	r.Register(csv.New())
	r.Register(po.New())
	r.Register(yaml.New())
	return r
}

func newParser() *flags.Parser {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if err := cfg.Load(opts.Config); err != nil {
			return err
		}
		if opts.LogLevel != "" {
			cfg.Log.Level = opts.LogLevel
		}
		cfg.SetupLogging()
		if command == nil {
			return nil
		}
		return command.Execute(args)
	}

	for _, c := range []struct {
		name, short, long string
		data              interface{}
	}{
		{"extract", "Extract messages from Go sources", "Extract translatable strings from Go sources into a .ts catalog, optionally merging an existing one.", &extractCommand{}},
		{"lookup", "Translate a message", "Resolve a (context, source) pair against the configured catalogs.", &lookupCommand{}},
		{"check", "Check catalogs for problems", "Report placeholder mismatches, conflicting duplicates and numerus form problems.", &checkCommand{}},
		{"stats", "Show catalog statistics", "Count the messages of catalogs by status.", &statsCommand{}},
		{"export", "Convert a catalog", "Convert a .ts catalog to another format.", &exportCommand{}},
		{"languages", "List available languages", "List the languages that have a catalog, or pick the best one for a preference list.", &languagesCommand{}},
	} {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			panic(err)
		}
	}
	return parser
}

func run(args []string) error {
	opts = globalOptions{}
	cfg = config.Config{}
	_, err := newParser().ParseArgs(args)
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintf(Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
