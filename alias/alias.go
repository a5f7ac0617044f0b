// Package alias maps numeric DMR identifiers to names, loaded from the
// name,id CSV files commonly distributed with repeater software.
package alias

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var log = logging.MustGetLogger("dmr/alias")

// Table maps an identifier to its alias.
type Table map[uint32]string

// Lookup returns the alias of id, or id in decimal if there is none.
func (t Table) Lookup(id uint32) string {
	if name, ok := t[id]; ok {
		return name
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Book holds the alias tables of an installation.
type Book struct {
	Subscribers Table
	Peers       Table
	Talkgroups  Table
}

// NewBook returns a Book with empty tables.
func NewBook() *Book {
	return &Book{
		Subscribers: Table{},
		Peers:       Table{},
		Talkgroups:  Table{},
	}
}

// Files names the CSV file of each table. Empty names are skipped.
type Files struct {
	Encoding    string `yaml:"encoding"`
	Subscribers string `yaml:"subscribers"`
	Peers       string `yaml:"peers"`
	Talkgroups  string `yaml:"talkgroups"`
}

// Load reads all configured tables. Files that do not exist are logged and
// leave their table empty.
func Load(files Files) (*Book, error) {
	enc, err := ParseEncoding(files.Encoding)
	if err != nil {
		return nil, err
	}

	book := NewBook()
	for _, t := range []struct {
		kind  string
		path  string
		table *Table
	}{
		{"subscriber", files.Subscribers, &book.Subscribers},
		{"peer", files.Peers, &book.Peers},
		{"talkgroup", files.Talkgroups, &book.Talkgroups},
	} {
		if t.path == "" {
			continue
		}
		table, err := LoadCSV(t.path, enc)
		if os.IsNotExist(errors.Cause(err)) {
			log.Warningf("%s: %s aliases will not be available", t.path, t.kind)
			continue
		} else if err != nil {
			return nil, err
		}
		log.Infof("loaded %d %s aliases from %s", len(table), t.kind, t.path)
		*t.table = table
	}
	return book, nil
}

// ParseEncoding returns the text encoding for a configuration name. The
// empty name selects UTF-8.
func ParseEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, errors.Errorf("unsupported alias encoding %q", name)
	}
}

// LoadCSV reads a name,id table from path.
func LoadCSV(path string, enc encoding.Encoding) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	table, err := ReadCSV(f, enc)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return table, nil
}

// ReadCSV reads a name,id table. A leading byte order mark is honoured
// regardless of enc. Rows without a numeric id, such as headers, are
// skipped.
func ReadCSV(r io.Reader, enc encoding.Encoding) (Table, error) {
	decoder := unicode.BOMOverride(enc.NewDecoder())
	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := Table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 32)
		if err != nil {
			log.Debugf("skipping alias row %q: %v", record, err)
			continue
		}
		table[uint32(id)] = strings.TrimSpace(record[0])
	}
	return table, nil
}
