package translator

import (
	"fmt"
	"os"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageEn = "en"
	LanguageAr = "ar"
)

func Init(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		logrus.Errorf("failed to list translation folder %s: %s", cfg.TranslationFolder, err.Error())
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() {
			continue
		}
		filepath := fmt.Sprintf("%s/%s", cfg.TranslationFolder, f.Name())
		if _, err := Translator.LoadMessageFile(filepath); err != nil {
			logrus.Warnf("failed to load translation file %s: %s", f.Name(), err.Error())
		}
	}
}

// T resolves a message key for the requested language, falling back to
// English, then to the key itself when no translation exists.
func T(lang, msgKey string) string {
	if Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		logrus.Warnf("translation not found for %s (%s): %s", msgKey, lang, err.Error())
		return msgKey
	}
	return msg
}
