package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cdmanager/go-linguist"
	"github.com/cdmanager/go-linguist/internal/tsextract"
)

type extractCommand struct {
	FilesFrom string `short:"f" long:"files-from" value-name:"FILE" description:"get list of input files from FILE"`

	Directories []string `short:"D" long:"directory" value-name:"DIRECTORY" description:"add DIRECTORY to list for input files search"`

	Output string `short:"o" long:"output" value-name:"FILE" description:"output to specified file"`

	Merge string `short:"m" long:"merge" value-name:"FILE" description:"merge the extracted messages into the catalog FILE"`

	NoObsolete bool `long:"no-obsolete" description:"drop messages that are no longer in the sources when merging"`

	CommentTags []string `short:"c" long:"add-comments" optional:"true" optional-value:"" value-name:"TAG" description:"place comment blocks starting with TAG preceding keyword lines in output file"`

	Keywords []string `short:"k" long:"keyword" optional:"true" optional-value:"" value-name:"WORD" description:"look for WORD as a translation keyword, a bare -k disables the defaults"`

	DefaultContext string `long:"default-context" value-name:"NAME" description:"context for keywords without a context argument"`

	NoLocation bool `long:"no-location" description:"do not write <location> elements"`

	SortOutput bool `short:"s" long:"sort-output" description:"generate sorted output"`

	Language string `long:"language" value-name:"LOCALE" description:"set the target language of the catalog"`

	Positional struct {
		Files []string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`
}

func (x *extractCommand) files() ([]string, error) {
	if x.FilesFrom == "" {
		return x.Positional.Files, nil
	}
	content, err := os.ReadFile(x.FilesFrom)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %v: %w", x.FilesFrom, err)
	}
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, nil
	}
	return strings.Split(string(content), "\n"), nil
}

func (x *extractCommand) Execute(args []string) error {
	files, err := x.files()
	if err != nil {
		return err
	}

	extractor := tsextract.Extractor{
		Directories:    x.Directories,
		CommentTags:    x.CommentTags,
		SortOutput:     x.SortOutput,
		NoLocation:     x.NoLocation,
		DefaultContext: x.DefaultContext,
		SourceLanguage: cfg.Catalog.SourceLanguage,
		Language:       x.Language,
	}
	addDefaultKeywords := true
	for _, spec := range x.Keywords {
		if spec == "" {
			// a bare "-k" option disables the default keywords
			addDefaultKeywords = false
			continue
		}
		kw, err := tsextract.ParseKeyword(spec)
		if err != nil {
			return fmt.Errorf("cannot parse keyword %s: %w", spec, err)
		}
		extractor.Keywords = append(extractor.Keywords, kw)
	}
	if addDefaultKeywords {
		extractor.AddDefaultKeywords()
	}

	for _, filename := range files {
		if err := extractor.ParseFile(filename); err != nil {
			return fmt.Errorf("cannot parse file %s: %w", filename, err)
		}
	}

	catalog := extractor.Template()
	if x.Merge != "" {
		existing, err := linguist.ReadFile(x.Merge)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			existing = nil
		case err != nil:
			return err
		}
		catalog = linguist.Merge(existing, catalog, linguist.MergeOptions{
			NoObsolete:  x.NoObsolete,
			NoLocations: x.NoLocation,
		})
		if catalog.Language == "" {
			catalog.Language = x.Language
		}
		if x.SortOutput {
			catalog.Sort()
		}
	}

	stats := catalog.Stats()
	log.Info().
		Int("files", len(files)).
		Int("messages", stats.Messages).
		Int("unfinished", stats.Unfinished).
		Msg("Extracted messages")

	if x.Output == "" {
		_, err = catalog.WriteTo(Stdout)
		return err
	}
	out, err := os.Create(x.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", x.Output, err)
	}
	if _, err := catalog.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return out.Close()
}
