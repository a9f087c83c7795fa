package linguist

// MergeOptions tune Merge.
type MergeOptions struct {
	// NoObsolete drops messages that are no longer in the sources
	// instead of keeping them as obsolete or vanished.
	NoObsolete bool
	// NoLocations leaves location information out of the result.
	NoLocations bool
}

// Merge updates an existing catalog with freshly extracted messages, as
// lupdate does. Messages still present keep their translation and take
// the extracted locations and comments; retired messages that reappear
// become unfinished. New messages are added unfinished. Messages that
// disappeared are retired: obsolete when they had a finished
// translation, vanished otherwise.
//
// The result is a new File carrying the language of existing; neither
// argument is modified. A nil existing catalog is treated as empty.
func Merge(existing, extracted *File, opts MergeOptions) *File {
	if existing == nil {
		existing = &File{}
	}
	out := &File{
		Version:        existing.Version,
		Language:       existing.Language,
		SourceLanguage: existing.SourceLanguage,
	}
	if out.SourceLanguage == "" {
		out.SourceLanguage = extracted.SourceLanguage
	}

	old := make(map[msgKey]*Message)
	for _, c := range existing.Contexts {
		for _, m := range c.Messages {
			key := msgKey{c.Name, m.Source, m.Comment}
			if _, ok := old[key]; !ok {
				old[key] = m
			}
		}
	}

	used := make(map[msgKey]bool)
	contexts := make(map[string]*Context)
	var order []*Context
	contextFor := func(name, comment string) *Context {
		if c, ok := contexts[name]; ok {
			return c
		}
		c := &Context{Name: name, Comment: comment}
		contexts[name] = c
		order = append(order, c)
		return c
	}

	for _, c := range extracted.Contexts {
		for _, m := range c.Messages {
			key := msgKey{c.Name, m.Source, m.Comment}
			if used[key] {
				continue
			}
			used[key] = true

			merged := &Message{
				ID:           m.ID,
				Source:       m.Source,
				Comment:      m.Comment,
				ExtraComment: m.ExtraComment,
				Numerus:      m.Numerus,
				Status:       Unfinished,
			}
			if !opts.NoLocations {
				merged.Locations = append([]Location(nil), m.Locations...)
			}
			if prev, ok := old[key]; ok {
				merged.TranslatorComment = prev.TranslatorComment
				merged.OldSource = prev.OldSource
				merged.Translation = prev.Translation
				merged.NumerusForms = append([]string(nil), prev.NumerusForms...)
				if !prev.Status.Retired() {
					merged.Status = prev.Status
				}
			}
			ctx := contextFor(c.Name, c.Comment)
			ctx.Messages = append(ctx.Messages, merged)
		}
	}

	if !opts.NoObsolete {
		for _, c := range existing.Contexts {
			for _, m := range c.Messages {
				key := msgKey{c.Name, m.Source, m.Comment}
				if used[key] {
					continue
				}
				used[key] = true

				retired := *m
				retired.Locations = nil
				retired.NumerusForms = append([]string(nil), m.NumerusForms...)
				switch {
				case m.Status.Retired():
				case m.Status == Finished && m.Text() != "":
					retired.Status = Obsolete
				default:
					retired.Status = Vanished
				}
				ctx := contextFor(c.Name, c.Comment)
				ctx.Messages = append(ctx.Messages, &retired)
			}
		}
	}

	out.Contexts = order
	return out
}
