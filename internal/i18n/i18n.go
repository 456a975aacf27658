package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var localesFS embed.FS

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations loads the embedded message files and selects lang.
func NewTranslations(lang string) (*Translations, error) {
	return newTranslations(lang, localesFS, "locales")
}

func newTranslations(lang string, fsys fs.FS, dir string) (*Translations, error) {
	if lang == "" {
		return nil, fmt.Errorf("language must not be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(fsys, dir+"/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	t := &Translations{bundle: bundle}
	if err := t.SetLanguage(lang); err != nil {
		return nil, err
	}
	return t, nil
}

// SetLanguage switches the active language. Region subtags are accepted
// and matched against the loaded languages.
func (t *Translations) SetLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language '%s': %w", lang, err)
	}

	matcher := language.NewMatcher(t.bundle.LanguageTags())
	_, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return fmt.Errorf("language '%s' not supported", lang)
	}

	t.localize = i18n.NewLocalizer(t.bundle, tag.String())
	return nil
}

func (t *Translations) GetMessage(messageID string, count int, templateData interface{}) string {
	cfg := &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	}
	if count > 0 {
		cfg.PluralCount = count
	}

	localized, err := t.localize.Localize(cfg)
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}
