package compendium

import (
	"bytes"
	"encoding/json"
	"io"
)

// Encode writes c as indented JSON, keeping non-ASCII text and '<', '>' and '&' as is.
func Encode(w io.Writer, c *Compendium) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func Marshal(c *Compendium) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Decode(r io.Reader) (*Compendium, error) {
	var c Compendium
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
