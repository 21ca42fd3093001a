package plant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeAttributes decodes a YAML or JSON mapping document into ordered Attributes.
// Keys keep their file order at every nesting level.
func DecodeAttributes(data []byte) (Attributes, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Attributes{}, ErrEmptyDocument
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Tab-indented JSON is valid JSON but not valid YAML.
		if looksLikeJSON(data) {
			return decodeJSONAttributes(data)
		}
		return Attributes{}, err
	}
	v, err := valueFromNode(&doc)
	if err != nil {
		return Attributes{}, err
	}
	if v.IsNull() {
		return Attributes{}, ErrEmptyDocument
	}
	if !v.IsMap() {
		return Attributes{}, ErrNotMapping
	}
	return v.Attributes(), nil
}

func valueFromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return valueFromNode(node.Content[0])
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	case yaml.MappingNode:
		items := make([]Attribute, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			v, err := valueFromNode(node.Content[i+1])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			items = append(items, Attribute{Key: key, Value: v})
		}
		return Map(NewAttributes(items...)), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := valueFromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	case yaml.ScalarNode:
		return scalarValue(node)
	default:
		return Null(), nil
	}
}

func scalarValue(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			var f float64
			if ferr := node.Decode(&f); ferr != nil {
				return Value{}, err
			}
			return Float(f), nil
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		return String(node.Value), nil
	}
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func decodeJSONAttributes(data []byte) (Attributes, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return Attributes{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Attributes{}, fmt.Errorf("plant: trailing data after document")
	}
	if !v.IsMap() {
		return Attributes{}, ErrNotMapping
	}
	return v.Attributes(), nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var items []Attribute
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				v, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, fmt.Errorf("key %q: %w", key, err)
				}
				items = append(items, Attribute{Key: key, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(NewAttributes(items...)), nil
		case '[':
			var items []Value
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		}
		return Value{}, fmt.Errorf("plant: unexpected delimiter %v", t)
	case json.Number:
		return numberValue(t.String())
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("plant: unexpected token %v", tok)
	}
}

func numberValue(raw string) (Value, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("plant: invalid number %q", raw)
	}
	return Float(f), nil
}
