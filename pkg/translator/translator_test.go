package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasktracker/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "en.toml", `taskNotFound = "task not found"`)
	writeFile(t, dir, "fr.toml", `taskNotFound = "tâche introuvable"`)
	writeFile(t, dir, "de.toml", `taskNotFound = "Aufgabe nicht gefunden"`)
	writeFile(t, dir, "README.md", "not a translation")

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	msg, err := i18n.NewLocalizer(translator.Translator, translator.LanguageFr).
		Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
	require.NoError(t, err)
	require.Equal(t, "tâche introuvable", msg)

	// de was skipped, so the bundle default (en) answers
	msg, err = i18n.NewLocalizer(translator.Translator, "de").
		Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
	require.NoError(t, err)
	require.Equal(t, "task not found", msg)
}

func TestInitTranslator_ShippedFilesShareKeys(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	for _, id := range []string{"taskNotFound", "taskOverlap", "invalidTaskPayload", "persistenceFailure"} {
		for _, lang := range []string{translator.LanguageEn, translator.LanguageFr} {
			_, err := i18n.NewLocalizer(translator.Translator, lang).
				Localize(&i18n.LocalizeConfig{MessageID: id})
			require.NoError(t, err, "%s/%s", lang, id)
		}
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})
	require.NotNil(t, translator.Translator)
}
