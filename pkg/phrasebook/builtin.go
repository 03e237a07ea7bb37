package phrasebook

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	builtinOnce sync.Once
	builtins    map[string]*Phrasebook
	builtinErr  error
)

func loadBuiltins() {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		builtinErr = err
		return
	}

	builtins = make(map[string]*Phrasebook, len(entries))
	for _, entry := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			builtinErr = err
			return
		}
		pb, err := Parse(data)
		if err != nil {
			builtinErr = fmt.Errorf("built-in %s: %w", entry.Name(), err)
			return
		}
		builtins[pb.Locale()] = pb
	}
}

// Builtin returns the embedded phrasebook for locale. Lookup ignores case and
// treats "_" like "-", so "zh_CN" falls back to "zh".
func Builtin(locale string) (*Phrasebook, error) {
	builtinOnce.Do(loadBuiltins)
	if builtinErr != nil {
		return nil, builtinErr
	}

	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
	for name != "" {
		if pb, ok := builtins[name]; ok {
			return pb, nil
		}
		i := strings.LastIndex(name, "-")
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
}

// ShortSuffix marks the compact variant of a locale, as in "en-short".
const ShortSuffix = "-short"

// Compact returns the embedded compact variant of locale, trying each
// less specific name in turn: "en-GB" finds "en-short". It reports false
// when no variant exists or locale already is one.
func Compact(locale string) (*Phrasebook, bool) {
	builtinOnce.Do(loadBuiltins)
	if builtinErr != nil {
		return nil, false
	}

	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
	if strings.HasSuffix(name, ShortSuffix) {
		return nil, false
	}
	for name != "" {
		if pb, ok := builtins[name+ShortSuffix]; ok {
			return pb, true
		}
		i := strings.LastIndex(name, "-")
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return nil, false
}

// Locales lists the embedded locale names in order.
func Locales() []string {
	builtinOnce.Do(loadBuiltins)
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// English returns the built-in "en" phrasebook.
func English() *Phrasebook {
	pb, err := Builtin("en")
	if err != nil {
		panic(err)
	}
	return pb
}
