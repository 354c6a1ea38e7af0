// Package locale holds the translated user-facing strings of the CLI.
package locale

import (
	"embed"
	"os"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFS embed.FS

// Message ids.
const (
	TagUnassigned = "TagUnassigned"
	LoggedIn      = "LoggedIn"
	LoggedOut     = "LoggedOut"
)

// Localizer translates message ids into one language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	entries, err := messageFS.ReadDir("messages")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		if _, err := b.LoadMessageFileFS(messageFS, "messages/"+e.Name()); err != nil {
			panic(err)
		}
	}
	return b
}

// New returns a localizer for lang. An empty lang falls back to the
// LC_ALL, LC_MESSAGES and LANG environment variables, then English.
func New(lang string) *Localizer {
	if lang == "" {
		lang = fromEnv()
	}
	tag := language.English
	if t, err := language.Parse(posixToBCP47(lang)); err == nil {
		tag = t
	}
	matcher := language.NewMatcher(bundle.LanguageTags())
	matched, _, _ := matcher.Match(tag)
	return &Localizer{
		tag:       matched,
		localizer: i18n.NewLocalizer(bundle, matched.String(), language.English.String()),
	}
}

// Language returns the matched language.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Text translates id. Unknown ids are returned unchanged.
func (l *Localizer) Text(id string, data map[string]any) string {
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return s
}

// Placeholder is the name shown for tags the server sent without one.
func (l *Localizer) Placeholder() string {
	return l.Text(TagUnassigned, nil)
}

// Supported lists the languages with a message file.
func Supported() []language.Tag {
	return bundle.LanguageTags()
}

func fromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

// posixToBCP47 turns "es_ES.UTF-8" into "es-ES".
func posixToBCP47(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}
