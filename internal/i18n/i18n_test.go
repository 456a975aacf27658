package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should load embedded locales", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		msg := trans.GetMessage("result_updated", 0, map[string]interface{}{
			"Number": 12,
			"Title":  "fix: handle nil config",
		})
		assert.Equal(t, "Title of #12 updated to: fix: handle nil config", msg)
	})

	t.Run("should fall back from a regional tag", func(t *testing.T) {
		trans, err := NewTranslations("es-AR")
		require.NoError(t, err)

		msg := trans.GetMessage("comment_suggestion", 0, struct {
			Title        string
			CurrentTitle string
		}{"feat: agregar caché", "wip"})
		assert.Contains(t, msg, "Título sugerido")
		assert.Contains(t, msg, "> feat: agregar caché")
		assert.Contains(t, msg, "`wip`")
	})

	t.Run("should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("")
		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("should fail with unsupported language", func(t *testing.T) {
		_, err := NewTranslations("ja")
		assert.Error(t, err)
	})
}

func TestGetMessage(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/active.en.toml": &fstest.MapFile{Data: []byte(`
[HelloWorld]
other = "Hello {{.Name}}!"
`)},
	}

	trans, err := newTranslations("en", fsys, "locales")
	require.NoError(t, err)

	assert.Equal(t, "Hello Gopher!", trans.GetMessage("HelloWorld", 0, map[string]string{"Name": "Gopher"}))
	assert.Equal(t, "Translation missing: Nope", trans.GetMessage("Nope", 0, nil))
}

func TestEmbeddedLocalesHaveTheSameKeys(t *testing.T) {
	en, err := NewTranslations("en")
	require.NoError(t, err)
	es, err := NewTranslations("es")
	require.NoError(t, err)

	ids := []string{
		"app_usage", "propose_usage", "suggest_usage", "fix_usage", "action_usage",
		"result_proposed", "result_commented", "result_updated", "result_unchanged",
		"comment_suggestion", "comment_suggestion_same", "comment_not_conventional",
		"comment_title_updated", "ui_try_suggestion", "error_pr_number_required",
	}

	for _, id := range ids {
		assert.NotContains(t, en.GetMessage(id, 0, nil), "Translation missing", id)
		assert.NotContains(t, es.GetMessage(id, 0, nil), "Translation missing", id)
	}
}
