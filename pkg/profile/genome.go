// Package profile decodes loosely typed Torre payloads and normalizes them
// into network nodes.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a string field that tolerates any JSON value. Anything other than
// a JSON string decodes to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// String returns the text.
func (t Text) String() string { return string(t) }

// List is an array field that tolerates any JSON value. Non-arrays decode
// to an empty list. An element that fails to decode becomes the zero value,
// so it still holds its index.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(List[T], len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err == nil {
			out[i] = v
		}
	}
	*l = out
	return nil
}

// Summary is one entry of a people search result.
type Summary struct {
	ID       Text `json:"id"`
	Username Text `json:"username"`
	Name     Text `json:"name"`
	Picture  Text `json:"picture"`
}

// Identifier is the username, or the id when the username is empty.
func (s Summary) Identifier() string {
	if s.Username != "" {
		return string(s.Username)
	}
	return string(s.ID)
}

// Genome is a full profile document.
type Genome struct {
	Person      *Person          `json:"person"`
	Strengths   List[Strength]   `json:"strengths"`
	Experiences List[Experience] `json:"experiences"`
}

// UnmarshalJSON leaves Person nil unless the document carries a person object.
func (g *Genome) UnmarshalJSON(data []byte) error {
	var aux struct {
		Person      json.RawMessage  `json:"person"`
		Strengths   List[Strength]   `json:"strengths"`
		Experiences List[Experience] `json:"experiences"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		if !isObject(data) {
			*g = Genome{}
			return nil
		}
		return err
	}
	*g = Genome{Strengths: aux.Strengths, Experiences: aux.Experiences}
	if isObject(aux.Person) {
		var p Person
		if err := json.Unmarshal(aux.Person, &p); err != nil {
			return err
		}
		g.Person = &p
	}
	return nil
}

// Person holds the identity part of a genome.
type Person struct {
	Name     Text      `json:"name"`
	Picture  Text      `json:"picture"`
	Location *Location `json:"location"`
}

// UnmarshalJSON ignores a location that is not an object.
func (p *Person) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name     Text            `json:"name"`
		Picture  Text            `json:"picture"`
		Location json.RawMessage `json:"location"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		*p = Person{}
		return nil
	}
	*p = Person{Name: aux.Name, Picture: aux.Picture}
	if isObject(aux.Location) {
		var loc Location
		if err := json.Unmarshal(aux.Location, &loc); err == nil {
			p.Location = &loc
		}
	}
	return nil
}

// Location is where a person is based.
type Location struct {
	Name Text `json:"name"`
}

// Strength is a declared skill.
type Strength struct {
	Name Text `json:"name"`
}

// Experience is one entry of a person's history. Only entries whose
// category is "jobs" describe employment.
type Experience struct {
	Category      Text               `json:"category"`
	Organizations List[Organization] `json:"organizations"`
}

// Organization is an employer.
type Organization struct {
	Name Text `json:"name"`
}

// DecodeGenome parses a genome document. It fails only on malformed JSON;
// unexpected field types degrade to empty values.
func DecodeGenome(data []byte) (*Genome, error) {
	var g Genome
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode genome: %w", err)
	}
	return &g, nil
}

func isObject(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}
