package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"mojiport/internal/domain"
	"mojiport/internal/logging"
)

// Lister walks the source catalog page by page and produces the transferable
// inventory: alias entries excluded, duplicate names collapsed (last page
// wins), records sorted by name.
type Lister struct {
	Source  EmojiSource
	IsAlias func(sourceURL string) bool
	Log     zerolog.Logger
}

func (l *Lister) Run(ctx context.Context) (domain.Inventory, error) {
	if l.Source == nil {
		return nil, errors.New("lister requires a Source")
	}

	stop := logging.Measure(l.Log, "listing catalog")
	defer stop()

	entries := make(map[string]string)
	aliases := 0
	cursor := ""
	pages := 0
	for {
		emoji, next, err := l.Source.ListPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("list emoji: %w", err)
		}
		pages++
		for name, url := range emoji {
			if l.IsAlias != nil && l.IsAlias(url) {
				aliases++
				continue
			}
			entries[name] = url
		}
		if next == "" {
			break
		}
		cursor = next
	}

	inv := domain.BuildInventory(entries)
	l.Log.Debug().
		Int("count", len(inv)).
		Int("aliases_excluded", aliases).
		Int("pages", pages).
		Msg("catalog listed")
	return inv, nil
}
