package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testTranslator(t *testing.T, lang string) *Translator {
	t.Helper()
	dir := t.TempDir()
	writeTable(t, dir, "addarr.en-us.yml", `en-us:
  greeting: "Hello %(name)s!"
  nested:
    deep: "english deep"
  onlyEnglish: "fallback text"
`)
	writeTable(t, dir, "addarr.de-de.yml", `de-de:
  greeting: "Hallo %(name)s!"
  nested:
    deep: "deutsch tief"
`)
	tr, err := NewTranslator(dir, lang, nil)
	require.NoError(t, err)
	return tr
}

func TestGetSubstitutesArgs(t *testing.T) {
	tr := testTranslator(t, "en-us")
	got := tr.Get("greeting", map[string]string{"name": "Ada"})
	assert.Equal(t, "Hello Ada!", got)
}

func TestGetFlattensNestedKeys(t *testing.T) {
	tr := testTranslator(t, "de-de")
	assert.Equal(t, "deutsch tief", tr.Get("nested.deep", nil))
}

func TestGetFallsBackToEnglish(t *testing.T) {
	tr := testTranslator(t, "de-de")
	assert.Equal(t, "fallback text", tr.Get("onlyEnglish", nil))
}

func TestGetMissingKeyReturnsKey(t *testing.T) {
	tr := testTranslator(t, "en-us")
	assert.Equal(t, "does.not.exist", tr.Get("does.not.exist", nil))
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	tr := testTranslator(t, "fr-fr")
	assert.Equal(t, FallbackLanguage, tr.Language())
}

func TestSetLanguage(t *testing.T) {
	tr := testTranslator(t, "en-us")

	require.NoError(t, tr.SetLanguage("de-de"))
	assert.Equal(t, "de-de", tr.Language())
	assert.Equal(t, "Hallo Ada!", tr.Get("greeting", map[string]string{"name": "Ada"}))

	assert.Error(t, tr.SetLanguage("xx-xx"))
	assert.Equal(t, "de-de", tr.Language())
}

func TestLanguages(t *testing.T) {
	tr := testTranslator(t, "en-us")
	assert.Equal(t, []string{"de-de", "en-us"}, tr.Languages())
}

func TestValidateReportsMissingKeys(t *testing.T) {
	tr := testTranslator(t, "en-us")
	missing := tr.Validate()
	require.Contains(t, missing, "de-de")
	assert.Equal(t, []string{"onlyEnglish"}, missing["de-de"])
}

func TestShippedTablesAreComplete(t *testing.T) {
	tr, err := NewTranslator("../../translations", FallbackLanguage, nil)
	require.NoError(t, err)

	missing := tr.Validate()
	for lang, keys := range missing {
		for _, key := range keys {
			t.Errorf("%s: missing %s", lang, key)
		}
	}
}
