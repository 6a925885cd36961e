// Package i18n is the localization provider. Catalogs are YAML files embedded
// in the binary, one per locale. A key that is missing everywhere resolves to
// the key itself so UI text is never blank.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback catalog for keys missing from the active locale
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	names   []string
}

// LoadEmbedded loads the catalogs shipped with the binary
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads locales/*.yaml from fsys
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		want := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if file.Locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, file.Locale, want)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		b.locales[file.Locale] = file.Messages
		b.names = append(b.names, file.Locale)
		b.tags = append(b.tags, tag)
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

// Locales returns the loaded locale names
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Match returns the best loaded locale for a requested one (e.g. "zh-TW" -> "zh-Hant")
func (b *Bundle) Match(requested string) string {
	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := language.NewMatcher(b.tags).Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return b.names[idx]
}

// Localizer resolves keys for one locale
type Localizer struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// NewLocalizer creates a localizer for the best match of locale
func (b *Bundle) NewLocalizer(locale string) *Localizer {
	matched := b.Match(locale)
	return &Localizer{
		bundle:  b,
		locale:  matched,
		printer: message.NewPrinter(language.Make(matched)),
	}
}

// Locale returns the active locale name
func (l *Localizer) Locale() string {
	return l.locale
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Params are named substitutions for {name} placeholders
type Params map[string]any

// T resolves key in the active locale, then the base locale, then returns the
// key itself. {name} placeholders are replaced from params; unknown
// placeholders are left as-is.
func (l *Localizer) T(key string, params Params) string {
	raw, ok := l.lookup(key)
	if !ok {
		return key
	}
	if len(params) == 0 {
		return raw
	}
	return placeholder.ReplaceAllStringFunc(raw, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok {
			return m
		}
		if n, isInt := v.(int); isInt {
			return l.Number(n)
		}
		return fmt.Sprint(v)
	})
}

// Has reports whether key resolves to a catalog message
func (l *Localizer) Has(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

func (l *Localizer) lookup(key string) (string, bool) {
	if l == nil || l.bundle == nil {
		return "", false
	}
	if v, ok := l.bundle.locales[l.locale][key]; ok {
		return v, true
	}
	if v, ok := l.bundle.locales[BaseLocale][key]; ok {
		return v, true
	}
	return "", false
}

// Number formats an integer with the locale's digit grouping
func (l *Localizer) Number(n int) string {
	if l == nil || l.printer == nil {
		return fmt.Sprint(n)
	}
	return l.printer.Sprintf("%d", n)
}
