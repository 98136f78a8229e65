package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslations(t *testing.T) {
	Init(Config{
		TranslationFolder:  "./translation",
		SupportedLanguages: []string{LanguageEn, LanguageAr},
	})

	assert.Equal(t, "task created!", T(LanguageEn, "task_created"))
	assert.NotEqual(t, T(LanguageEn, "task_created"), T(LanguageAr, "task_created"))
}

func TestFallbackToEnglish(t *testing.T) {
	Init(Config{
		TranslationFolder:  "./translation",
		SupportedLanguages: []string{LanguageEn, LanguageAr},
	})

	// unsupported language falls back to english
	assert.Equal(t, "task created!", T("fr", "task_created"))
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	Init(Config{
		TranslationFolder:  "./translation",
		SupportedLanguages: []string{LanguageEn, LanguageAr},
	})

	assert.Equal(t, "no_such_key", T(LanguageEn, "no_such_key"))
}
