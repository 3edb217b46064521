package org

import (
	"encoding/json"
	"time"
)

// elementWire is the serialized shape of an Element. Fields that do not
// apply to the element's kind are omitted.
type elementWire struct {
	Kind     string        `json:"kind" yaml:"kind"`
	Line     string        `json:"line,omitempty" yaml:"line,omitempty"`
	LineNum  int           `json:"lineNum,omitempty" yaml:"lineNum,omitempty"`
	Level    int           `json:"level" yaml:"level"`
	FileName string        `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	Caption  string        `json:"caption,omitempty" yaml:"caption,omitempty"`
	Tags     []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	Property *propertyWire `json:"property,omitempty" yaml:"property,omitempty"`
	Start    *time.Time    `json:"start,omitempty" yaml:"start,omitempty"`
	End      *time.Time    `json:"end,omitempty" yaml:"end,omitempty"`
	Children []*Element    `json:"children" yaml:"children,omitempty"` // never nil in JSON
}

type propertyWire struct {
	Key       string `json:"key" yaml:"key"`
	Value     string `json:"value" yaml:"value"`
	Operation string `json:"operation" yaml:"operation"` // "set" | "add"
}

func (e *Element) wire() elementWire {
	w := elementWire{
		Kind:     e.Kind.String(),
		Line:     e.Line,
		LineNum:  e.LineNum,
		Level:    e.Level,
		FileName: e.FileName,
		Caption:  e.Caption,
		Tags:     e.Tags,
		Name:     e.Name,
		Children: e.Children,
	}
	if w.Children == nil {
		w.Children = []*Element{}
	}
	if e.Property != nil {
		w.Property = &propertyWire{
			Key:       e.Property.Key,
			Value:     e.Property.Value,
			Operation: e.Property.Operation.String(),
		}
	}
	if !e.Start.IsZero() {
		start := e.Start
		w.Start = &start
	}
	if !e.End.IsZero() {
		end := e.End
		w.End = &end
	}
	return w
}

// MarshalJSON encodes the element and its subtree.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (e *Element) MarshalYAML() (interface{}, error) {
	return e.wire(), nil
}
