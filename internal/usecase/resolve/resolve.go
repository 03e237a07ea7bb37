package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/pkg/phrasebook"
)

// DefaultLocale is used when the caller asks for no locale at all
const DefaultLocale = "en"

// Source says where a resolved phrasebook came from
type Source string

const (
	SourceRepository Source = "repository"
	SourceBuiltin    Source = "builtin"
)

// ResolveUseCase turns a locale name into a phrasebook
type ResolveUseCase struct {
	repository model.PhrasebookRepository
}

// NewResolveUseCase creates a new resolve use case. repo may be nil, in which
// case only the built-in phrasebooks are consulted.
func NewResolveUseCase(repo model.PhrasebookRepository) *ResolveUseCase {
	return &ResolveUseCase{
		repository: repo,
	}
}

// Resolve finds the phrasebook for locale.
// Stored phrasebooks shadow built-ins, and both are searched from the most
// specific name down: "zh-Hant-TW" tries "zh-hant-tw", "zh-hant", then "zh".
// A stored record that no longer validates is skipped with a warning.
// Returns an error wrapping phrasebook.ErrUnknownLocale when nothing matches.
func (uc *ResolveUseCase) Resolve(ctx context.Context, locale string) (*phrasebook.Phrasebook, Source, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}

	if uc.repository != nil {
		for _, candidate := range Candidates(locale) {
			record, err := uc.repository.Get(ctx, candidate)
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, "", fmt.Errorf("failed to look up phrasebook %s: %w", candidate, err)
			}

			pb, err := record.Phrasebook()
			if err != nil {
				slog.Warn("Ignoring invalid stored phrasebook",
					slog.String("locale", candidate),
					slog.Int64("rev", record.Rev),
					slog.String("error", err.Error()))
				continue
			}
			return pb, SourceRepository, nil
		}
	}

	pb, err := phrasebook.Builtin(locale)
	if err != nil {
		return nil, "", err
	}
	return pb, SourceBuiltin, nil
}

// Candidates lists the normalized locale names tried for locale, most
// specific first.
func Candidates(locale string) []string {
	name := model.NormalizeLocale(locale)
	var out []string
	for name != "" {
		out = append(out, name)
		i := strings.LastIndex(name, "-")
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return out
}
