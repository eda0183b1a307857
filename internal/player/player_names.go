package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

type nameEntry struct {
	DubName  string `json:"dub_name"`
	RomaName string `json:"roma_name"`
}

// NameBook maps English dub names to romanized Japanese names.
type NameBook struct {
	names map[string]string
}

// NewNameBook builds a book from dub -> roma pairs. Keys are case-insensitive.
func NewNameBook(pairs map[string]string) *NameBook {
	b := &NameBook{names: make(map[string]string, len(pairs))}
	for dub, roma := range pairs {
		if dub != "" && roma != "" {
			b.names[strings.ToLower(dub)] = roma
		}
	}
	return b
}

// LoadNameBook reads jp_names.json. A missing file gives an empty book.
func LoadNameBook(path string) (*NameBook, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewNameBook(nil), nil
	}
	if err != nil {
		return nil, err
	}

	var entries []nameEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	pairs := make(map[string]string, len(entries))
	for _, e := range entries {
		pairs[e.DubName] = e.RomaName
	}
	return NewNameBook(pairs), nil
}

// Jp returns the romanized name for an English name, or the name itself.
func (b *NameBook) Jp(name string) string {
	if b == nil {
		return name
	}
	if roma, ok := b.names[strings.ToLower(name)]; ok {
		return roma
	}
	return name
}

// Display picks the name shown to the user for the locale preference.
func (b *NameBook) Display(name string, jp bool) string {
	if jp {
		return b.Jp(name)
	}
	return name
}
