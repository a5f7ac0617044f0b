package alias

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("name,id\nPD0MZ, 2042214\nWorldwide,91\nbroken\n"), unicode.UTF8)
	require.NoError(t, err)
	assert.Equal(t, Table{2042214: "PD0MZ", 91: "Worldwide"}, table)
}

func TestReadCSVBOM(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\ufeffLocal,9\n"), charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "Local", table.Lookup(9))
}

func TestReadCSVLatin1(t *testing.T) {
	// "Sm\xf8rrebr\xf8d" is Smørrebrød in ISO-8859-1.
	table, err := ReadCSV(strings.NewReader("Sm\xf8rrebr\xf8d,238\n"), charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "Smørrebrød", table.Lookup(238))
}

func TestLookup(t *testing.T) {
	table := Table{91: "Worldwide"}
	assert.Equal(t, "Worldwide", table.Lookup(91))
	assert.Equal(t, "3100", table.Lookup(3100))
}

func TestParseEncoding(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "latin1", "ISO-8859-1", "windows-1252"} {
		_, err := ParseEncoding(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseEncoding("ebcdic")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	subscribers := filepath.Join(dir, "subscriber_ids.csv")
	require.NoError(t, os.WriteFile(subscribers, []byte("PD0MZ,2042214\n"), 0o644))

	book, err := Load(Files{
		Subscribers: subscribers,
		Peers:       filepath.Join(dir, "missing.csv"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PD0MZ", book.Subscribers.Lookup(2042214))
	assert.Empty(t, book.Peers)
	assert.Empty(t, book.Talkgroups)
	assert.Equal(t, "91", book.Talkgroups.Lookup(91))

	_, err = Load(Files{Encoding: "ebcdic"})
	assert.Error(t, err)
}
