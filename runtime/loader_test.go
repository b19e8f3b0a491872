package runtime

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	errs "chat-relay/errors"
)

func TestLoadCensoredWords_Embedded(t *testing.T) {
	req := require.New(t)

	// The embedded lists must always load; an empty dictionary would make
	// moderation silently useless.
	data, err := LoadCensoredWords()
	req.NoError(err)
	req.NotEmpty(data.Words)
	req.Contains(data.Languages, "en")
	req.Contains(data.Languages, "fr")
}

func Test_loadCensoredWords(t *testing.T) {
	req := require.New(t)

	fsys := fstest.MapFS{
		"words/en.txt": {Data: []byte("badger\nsnake\n\n  badger  \n")},
		"words/fr.txt": {Data: []byte("vipere\r\nsnake\r\n")},
	}

	data, err := loadCensoredWords(fsys, "words")
	req.NoError(err)

	// Words are deduplicated across files; whitespace and blank lines ignored
	req.ElementsMatch([]string{"badger", "snake", "vipere"}, data.Words)
	req.ElementsMatch([]string{"en", "fr"}, data.Languages)
}

func Test_loadCensoredWords_Empty(t *testing.T) {
	req := require.New(t)

	fsys := fstest.MapFS{
		"words/en.txt": {Data: []byte("\n   \n")},
	}

	_, err := loadCensoredWords(fsys, "words")
	req.ErrorIs(err, errs.ErrEmptyWords)
}
