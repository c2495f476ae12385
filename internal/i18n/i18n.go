// Package i18n loads the embedded message catalogues and resolves the
// interface language of a request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Bundle holds the catalogues of all supported languages.
type Bundle struct {
	bundle    *i18n.Bundle
	supported []language.Tag
	matcher   language.Matcher
}

// New loads the embedded catalogues. The default language comes first in the
// supported list and is the fallback for missing messages.
func New(defaultLanguage string, languages []string) (*Bundle, error) {
	def, err := language.Parse(defaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLanguage, err)
	}

	bundle := i18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}

	for _, file := range files {
		buf, errRead := locales.ReadFile(file)
		if errRead != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, errRead)
		}

		if _, errParse := bundle.ParseMessageFileBytes(buf, path.Base(file)); errParse != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, errParse)
		}
	}

	supported := []language.Tag{def}

	for _, l := range languages {
		tag, errParse := language.Parse(l)
		if errParse != nil {
			return nil, fmt.Errorf("invalid language %q: %w", l, errParse)
		}

		if tag != def {
			supported = append(supported, tag)
		}
	}

	return &Bundle{
		bundle:    bundle,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Match picks the supported language for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.supported[0]
	}

	_, idx, _ := b.matcher.Match(tags...)

	return b.supported[idx]
}

// Localizer returns a localizer for tag.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(b.bundle, tag.String()),
	}
}

// Localizer translates messages into one language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// T returns the message with id rendered with data. Unknown ids, and any id
// on a nil localizer, are returned unchanged.
func (l *Localizer) T(id string, data map[string]any) string {
	if l == nil {
		return id
	}

	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.Debug().Err(err).Str("id", id).Str("lang", l.tag.String()).Msg("missing translation")

		if msg != "" {
			return msg
		}

		return id
	}

	return msg
}

// Lang is the BCP 47 tag of the localizer, e.g. "de".
func (l *Localizer) Lang() string {
	if l == nil {
		return ""
	}

	return l.tag.String()
}
