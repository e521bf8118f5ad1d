package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

const (
	FieldURL       string = "url"
	FieldName      string = "name"
	FieldHeight    string = "height"
	FieldMass      string = "mass"
	FieldResidents string = "residents"
)

// Entity is an item returned by the upstream catalog. Only a few fields are
// interpreted by the aggregator, everything else is passed through as is.
type Entity map[string]any

func (e Entity) URL() string {
	return e.Text(FieldURL)
}

func (e Entity) Name() string {
	return e.Text(FieldName)
}

// Text returns the value of a field as a string, or an empty string if the field
// is missing or not a string.
func (e Entity) Text(field string) string {
	if s, ok := e[field].(string); ok {
		return s
	}
	return ""
}

func (e Entity) Field(field string) (any, bool) {
	v, ok := e[field]
	return v, ok
}

// With returns a shallow copy of the entity where field is set to value.
func (e Entity) With(field string, value any) Entity {
	cpy := maps.Clone(e)
	if cpy == nil {
		cpy = Entity{}
	}
	cpy[field] = value
	return cpy
}

// Collection is the ordered concatenation of every page of a resource.
type Collection []Entity

// Page is a single response from a cursor paginated resource.
type Page struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  Collection `json:"results"`
}

// HasNext reports whether the page is followed by another page.
func (p Page) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// NewPageFromJSON decodes a page, keeping numeric entity values as json.Number
// so that they are passed through unchanged.
func NewPageFromJSON(body []byte) (*Page, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	p := &Page{}
	if err := dec.Decode(p); err != nil {
		return nil, err
	}

	if p.Results == nil {
		return nil, fmt.Errorf("page has no results")
	}

	return p, nil
}
