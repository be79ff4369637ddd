// Package i18n loads the UI message catalogs and resolves localized strings.
//
// Catalogs are YAML files under locales/, one per locale. Lookups fall back
// to BaseLocale and finally to the key itself, so a missing translation
// never blanks a label.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog is checked against.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale catalog.
type Bundle struct {
	locales map[string]map[string]string
	catalog *catalog.Builder
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFS(embeddedFS)
}

// LoadFS loads locales/*.yaml from fsys.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", p, err)
		}
		if err := b.add(p, data); err != nil {
			return nil, err
		}
	}

	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

// build compiles every locale, overlaid on the base catalog, into one
// x/text catalog.
func (b *Bundle) build() error {
	b.catalog = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	for locale := range b.locales {
		tag := language.MustParse(locale)
		for key, value := range b.merged(locale) {
			if err := b.catalog.SetString(tag, key, value); err != nil {
				return fmt.Errorf("i18n: %s: message %q: %w", locale, key, err)
			}
		}
	}
	return nil
}

func (b *Bundle) add(p string, data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", p, err)
	}

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("i18n: %s: locale is required", p)
	}
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
		return fmt.Errorf("i18n: %s: locale %q must match file name %q", p, locale, want)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("i18n: %s: invalid locale %q: %w", p, locale, err)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("i18n: %s: messages are required", p)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("i18n: %s: message key cannot be blank", p)
		}
		messages[key] = value
	}
	b.locales[locale] = messages
	return nil
}

// HasLocale reports whether locale has a catalog.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[locale]
	return ok
}

// Locales returns the loaded locale identifiers, base locale first.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		if locale != BaseLocale {
			out = append(out, locale)
		}
	}
	sort.Strings(out)
	if b.HasLocale(BaseLocale) {
		out = append([]string{BaseLocale}, out...)
	}
	return out
}

// Message returns the raw catalog value for key, falling back to the base
// locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	if v, ok := b.locales[locale][key]; ok {
		return v, true
	}
	v, ok := b.locales[BaseLocale][key]
	return v, ok
}

// merged returns the base catalog overlaid with locale's own messages.
func (b *Bundle) merged(locale string) map[string]string {
	out := make(map[string]string, len(b.locales[BaseLocale]))
	for k, v := range b.locales[BaseLocale] {
		out[k] = v
	}
	for k, v := range b.locales[locale] {
		out[k] = v
	}
	return out
}

// Translator resolves keys for one locale. It implements
// escalate.MessageProvider.
type Translator struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// Translator returns a translator for the closest available match to
// requested. An empty or unparseable request selects the base locale.
func (b *Bundle) Translator(requested string) *Translator {
	locales := b.Locales()
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.MustParse(l)
	}

	locale := BaseLocale
	if tag, err := language.Parse(requested); err == nil && len(tags) > 0 {
		_, idx, conf := language.NewMatcher(tags).Match(tag)
		if conf != language.No {
			locale = locales[idx]
		}
	}

	return &Translator{
		bundle:  b,
		locale:  locale,
		printer: message.NewPrinter(language.MustParse(locale), message.Catalog(b.catalog)),
	}
}

// Locale returns the locale the translator resolved to.
func (t *Translator) Locale() string { return t.locale }

// T formats the message for key with args. Unknown keys render as the key.
func (t *Translator) T(key string, args ...any) string {
	if _, ok := t.bundle.Message(t.locale, key); !ok {
		return key
	}
	return t.printer.Sprintf(key, args...)
}

// Fortune returns the easter-egg fortune for index, verbatim.
func (t *Translator) Fortune(index int) (string, bool) {
	key := fmt.Sprintf("easter.fortune%d", index)
	v, ok := t.bundle.Message(t.locale, key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// DetectLocale reads the POSIX locale environment and returns a BCP 47
// identifier such as "zh-CN". It returns "" when nothing usable is set.
func DetectLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		v = strings.ReplaceAll(v, "_", "-")
		if _, err := language.Parse(v); err == nil {
			return v
		}
	}
	return ""
}
