package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"rotary-phone/internal/history"

	"gopkg.in/yaml.v3"
)

// ErrMalformedDocument is returned when an import document does not have
// the expected structure.
var ErrMalformedDocument = errors.New("malformed import document")

// Document is the export/import payload. A nil Contacts or History means
// the key is absent; a non-nil empty value means it is present but empty.
type Document struct {
	Contacts map[string]string
	History  []history.Entry
}

// Format selects the encoding of an export file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatForPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// MarshalJSON writes only the keys that are present.
func (d Document) MarshalJSON() ([]byte, error) {
	var w struct {
		Contacts json.RawMessage `json:"contacts,omitempty"`
		History  json.RawMessage `json:"history,omitempty"`
	}
	var err error
	if d.Contacts != nil {
		if w.Contacts, err = json.Marshal(d.Contacts); err != nil {
			return nil, err
		}
	}
	if d.History != nil {
		if w.History, err = json.Marshal(d.History); err != nil {
			return nil, err
		}
	}
	return json.Marshal(w)
}

// wireEntry distinguishes missing fields from empty ones.
type wireEntry struct {
	Number    *string `json:"number"`
	Formatted *string `json:"formatted"`
	Timestamp *string `json:"timestamp"`
}

// UnmarshalJSON validates and decodes a document. The top level must be an
// object; "contacts", when present, must map names to string numbers;
// "history", when present, must be an array of objects each carrying a
// string "number" and optional string "formatted" and "timestamp". Other
// top-level keys are ignored.
func (d *Document) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return malformed("top level: %v", err)
	}
	if top == nil {
		return malformed("top level: expected an object, got null")
	}

	var doc Document
	if raw, ok := top["contacts"]; ok {
		if isNull(raw) {
			return malformed("contacts: expected an object, got null")
		}
		if err := json.Unmarshal(raw, &doc.Contacts); err != nil {
			return malformed("contacts: %v", err)
		}
	}

	if raw, ok := top["history"]; ok {
		if isNull(raw) {
			return malformed("history: expected an array, got null")
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return malformed("history: %v", err)
		}
		doc.History = make([]history.Entry, 0, len(items))
		for i, item := range items {
			if isNull(item) {
				return malformed("history[%d]: expected an object, got null", i)
			}
			var w wireEntry
			if err := json.Unmarshal(item, &w); err != nil {
				return malformed("history[%d]: %v", i, err)
			}
			if w.Number == nil {
				return malformed("history[%d]: missing number", i)
			}
			doc.History = append(doc.History, history.Entry{
				Number:    *w.Number,
				Formatted: deref(w.Formatted),
				Timestamp: deref(w.Timestamp),
			})
		}
	}

	*d = doc
	return nil
}

// Encode renders doc in the given format. JSON output is indented by two spaces.
func Encode(doc Document, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if format != FormatYAML {
		return append(data, '\n'), nil
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses data in the given format. Any structural problem is
// reported as an error wrapping ErrMalformedDocument.
func Decode(data []byte, format Format) (Document, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return Document{}, malformed("yaml: %v", err)
		}
		data = converted
	}
	if len(bytes.TrimSpace(data)) == 0 || isNull(data) {
		return Document{}, malformed("document is empty")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		if errors.Is(err, ErrMalformedDocument) {
			return Document{}, err
		}
		return Document{}, malformed("%v", err)
	}
	return doc, nil
}

// yamlToJSON converts a YAML document to JSON. Scalars holding contact
// numbers and history entry fields are read as their literal text, so an
// unquoted 5551234 or 0123 arrives as the string it was written as.
func yamlToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return []byte("null"), nil
	}

	top := root.Content[0]
	if top.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(top.Content); i += 2 {
			key, value := top.Content[i], top.Content[i+1]
			switch {
			case key.Value == "contacts" && value.Kind == yaml.MappingNode:
				literalValues(value)
			case key.Value == "history" && value.Kind == yaml.SequenceNode:
				for _, item := range value.Content {
					if item.Kind == yaml.MappingNode {
						literalValues(item)
					}
				}
			}
		}
	}

	var generic any
	if err := root.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// literalValues retags the non-null scalar values of a mapping as strings.
func literalValues(mapping *yaml.Node) {
	for i := 1; i < len(mapping.Content); i += 2 {
		v := mapping.Content[i]
		if v.Kind == yaml.ScalarNode && v.Tag != "!!null" {
			v.Tag = "!!str"
		}
	}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, args...))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
