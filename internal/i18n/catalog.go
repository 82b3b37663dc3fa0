// internal/i18n/catalog.go
//
// Locale catalogs for every player-facing string.
// Responsibilities:
//   - Load YAML catalogs (one file per locale) from an fs.FS.
//   - Register them with golang.org/x/text/message.
//   - Hand out Printers matched to a requested language.
//
// Catalog file shape:
//
//	locale: pt-BR
//	messages:
//	  prompt.awaiting_input: "Sua vez! Repita a sequência."
//
// BaseLocale must be present; lookups missing elsewhere fall back to it.
package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/quantumbox/assets"
	"github.com/robalobadob/quantumbox/internal/game"
)

// BaseLocale is the canonical source locale.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag // BaseLocale first
	matcher language.Matcher
}

// Load reads "*.yaml" catalogs from fsys. File names must match their locale.
func Load(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "*.yaml")
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
		locale := strings.TrimSpace(file.Locale)
		if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
		}
		if file.Messages == nil {
			return nil, fmt.Errorf("catalog %s: messages map is required", p)
		}
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale tag %q: %w", p, locale, err)
		}
		b.locales[locale] = file.Messages
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	b.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, l := range b.Locales() {
		if l != BaseLocale {
			b.tags = append(b.tags, language.MustParse(l))
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Register registers all catalog messages with x/text/message.
func (b *Bundle) Register() error {
	for _, tag := range b.tags {
		for key, msg := range b.locales[tag.String()] {
			if err := message.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("register %s/%s: %w", tag, key, err)
			}
		}
	}
	return nil
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for l := range b.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Match resolves lang (any BCP 47 string) to a loaded locale, defaulting to
// BaseLocale.
func (b *Bundle) Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return b.tags[0]
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return b.tags[0]
	}
	return b.tags[idx]
}

// Printer renders catalog keys in one locale.
type Printer struct {
	tag    language.Tag
	bundle *Bundle
	p      *message.Printer
	base   *message.Printer
}

// Printer returns a Printer for lang.
func (b *Bundle) Printer(lang string) *Printer {
	tag := b.Match(lang)
	return &Printer{
		tag:    tag,
		bundle: b,
		p:      message.NewPrinter(tag),
		base:   message.NewPrinter(b.tags[0]),
	}
}

// Locale is the matched locale tag.
func (p *Printer) Locale() string { return p.tag.String() }

// Text returns the message for key, falling back to BaseLocale and then to
// the key itself.
func (p *Printer) Text(key string) string {
	if _, ok := p.bundle.locales[p.tag.String()][key]; ok {
		return p.p.Sprintf(key)
	}
	if _, ok := p.bundle.locales[BaseLocale][key]; ok {
		return p.base.Sprintf(key)
	}
	return key
}

// Prompt returns the instructional message for a challenge prompt.
func (p *Printer) Prompt(pr game.Prompt) string {
	if pr == game.PromptNone {
		return ""
	}
	return p.Text("prompt." + pr.String())
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default loads and registers the embedded catalogs once.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = Load(assets.Locales())
		if defaultErr == nil {
			defaultErr = defaultBundle.Register()
		}
	})
	return defaultBundle, defaultErr
}

// New returns a Printer for lang over the embedded catalogs.
func New(lang string) (*Printer, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return b.Printer(lang), nil
}
