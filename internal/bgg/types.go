package bgg

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Items is the root element of a thing response.
type Items struct {
	XMLName xml.Name `xml:"items"`
	Items   []Item   `xml:"item"`
}

// Item is one board-game record. Every element may be missing.
type Item struct {
	ID          string  `xml:"id,attr"`
	Type        string  `xml:"type,attr"`
	Names       []Name  `xml:"name"`
	Description string  `xml:"description"`
	Image       string  `xml:"image"`
	Thumbnail   string  `xml:"thumbnail"`
	MinPlayers  Value   `xml:"minplayers"`
	MaxPlayers  Value   `xml:"maxplayers"`
	PlayingTime Value   `xml:"playingtime"`
	MinAge      Value   `xml:"minage"`
	Links       []Link  `xml:"link"`
	Categories  []Value `xml:"boardgamecategory"` // legacy xmlapi v1 shape
}

// Name is a title entry; Type is "primary" or "alternate".
type Name struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// Value is an element carrying its payload in a value attribute, or as text
// in older documents.
type Value struct {
	Value string `xml:"value,attr"`
	Text  string `xml:",chardata"`
}

// String returns the attribute value, falling back to the element text.
func (v Value) String() string {
	if v.Value != "" {
		return v.Value
	}
	return v.Text
}

// Link references a related entity, e.g. type="boardgamecategory".
type Link struct {
	Type  string `xml:"type,attr"`
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

// Parse decodes a thing response document.
func Parse(r io.Reader) (*Items, error) {
	var doc Items
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &doc, nil
}
