package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIndex_ParsesLevelsAndItems(t *testing.T) {
	path := writeIndex(t, `{
		"1": [
			{"character": "一", "url": "https://www.wanikani.com/radicals/ground", "meaning": "Ground", "type": "radical"}
		],
		"10": [
			{"character": "山", "url": "https://www.wanikani.com/kanji/山", "meaning": "Mountain"},
			{"character": "川", "url": "https://www.wanikani.com/kanji/川", "meaning": "River"}
		],
		"2": []
	}`)

	ix, err := LoadIndex(path)
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 10}, ix.Levels())
	require.Equal(t, 3, ix.TotalItems())

	items := ix.Items(1)
	require.Len(t, items, 1)
	require.Equal(t, "一", items[0].Character)
	require.Equal(t, "Ground", items[0].Meaning)
	require.Equal(t, "radical", items[0].Type)
}

func TestLoadIndex_SanitizesItemURLs(t *testing.T) {
	path := writeIndex(t, `{
		"1": [{"character": "山", "url": " https://www.wanikani.com/kanji/mountain, "}]
	}`)

	ix, err := LoadIndex(path)
	require.NoError(t, err)
	require.Equal(t, "https://www.wanikani.com/kanji/mountain", ix.Items(1)[0].URL)
}

func TestLoadIndex_RejectsNonNumericLevelKey(t *testing.T) {
	path := writeIndex(t, `{"one": [{"character": "一", "url": "https://example.com/一"}]}`)

	_, err := LoadIndex(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `"one"`)
}

func TestLoadIndex_RejectsMissingCharacter(t *testing.T) {
	path := writeIndex(t, `{"3": [{"url": "https://example.com/mystery"}]}`)

	_, err := LoadIndex(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no character")
}

func TestLoadIndex_RejectsUnfetchableURLs(t *testing.T) {
	for _, tc := range []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"relative path", "/kanji/mountain"},
		{"wrong scheme", "ftp://example.com/kanji"},
		{"unencoded space", "https://example.com/big mountain"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeIndex(t, `{"1": [{"character": "山", "url": "`+tc.url+`"}]}`)

			_, err := LoadIndex(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), "山")
		})
	}
}

func TestLoadIndex_MissingFileIsAnError(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadIndex_CorruptJSONIsAnError(t *testing.T) {
	path := writeIndex(t, `{"1": [`)

	_, err := LoadIndex(path)
	require.Error(t, err)
}

func TestIndex_MissingLevelIsIntentionallyEmpty(t *testing.T) {
	ix := Index{5: {{Character: "山", URL: "https://example.com/山"}}}

	require.Nil(t, ix.Items(4))
	require.Len(t, ix.Items(5), 1)
}
