package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFallsBackToEnglish(t *testing.T) {
	loc := Table{}

	assert.Equal(t, "✅ Saqlandi.", loc.Text("saved", "uz"))
	assert.Equal(t, "✅ Saved.", loc.Text("saved", "de"))
	assert.Equal(t, "noma'lum kalit", loc.Text("noma'lum kalit", "uz"))
}

func TestAllKeysHaveThreeLanguages(t *testing.T) {
	for key, byLang := range texts {
		for _, lang := range []string{"uz", "ru", "en"} {
			assert.Contains(t, byLang, lang, "kalit %q uchun %q tili yo'q", key, lang)
		}
	}
}

func TestCategoriesPairedWithCanonicalKeys(t *testing.T) {
	loc := Table{}

	for _, lang := range []string{"uz", "ru", "en"} {
		opts := loc.Categories(lang)
		require.Len(t, opts, len(CategoryKeys))
		for i, opt := range opts {
			assert.Equal(t, CategoryKeys[i], opt.Key)
			assert.NotEmpty(t, opt.Label)
		}
	}

	// noma'lum til ingliz tugmalarini oladi
	fallback := loc.Categories("de")
	require.Len(t, fallback, len(CategoryKeys))
	assert.Equal(t, loc.Categories("en"), fallback)
}
