// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"sort"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	keyType     = "type"
	keyValue    = "value"
	keyChildren = "children"
)

// 🔧 MarshalJSON writes the node as a unist object: type, value, children, then props
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return errors.Errorf("encoding %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	if err := writeField(keyType, n.Type); err != nil {
		return nil, err
	}
	if n.hasValue() {
		if err := writeField(keyValue, n.Value); err != nil {
			return nil, err
		}
	}
	if n.Children != nil {
		if err := writeField(keyChildren, n.Children); err != nil {
			return nil, err
		}
	}
	for _, k := range n.propKeys() {
		if err := writeField(k, n.Props[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// 📝 UnmarshalJSON reads a unist object
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Errorf("decoding node: %w", err)
	}
	out, err := fromMap(raw)
	if err != nil {
		return err
	}
	*n = *out
	return nil
}

// 🔧 MarshalYAML writes the node as a mapping in unist key order
func (n *Node) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, v any) error {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return errors.Errorf("encoding %q: %w", key, err)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &val)
		return nil
	}

	if err := add(keyType, n.Type); err != nil {
		return nil, err
	}
	if n.hasValue() {
		if err := add(keyValue, n.Value); err != nil {
			return nil, err
		}
	}
	if n.Children != nil {
		if err := add(keyChildren, n.Children); err != nil {
			return nil, err
		}
	}
	for _, k := range n.propKeys() {
		if err := add(k, n.Props[k]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// 📝 UnmarshalYAML reads a unist mapping
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return errors.Errorf("decoding node at line %d: %w", value.Line, err)
	}
	out, err := fromMap(raw)
	if err != nil {
		return err
	}
	*n = *out
	return nil
}

// 🎯 DecodeJSON reads a tree from JSON
func DecodeJSON(r io.Reader) (*Node, error) {
	var n Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, errors.Errorf("parsing JSON tree: %w", err)
	}
	return &n, nil
}

// 🎯 DecodeYAML reads a tree from YAML
func DecodeYAML(r io.Reader) (*Node, error) {
	var n Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		return nil, errors.Errorf("parsing YAML tree: %w", err)
	}
	return &n, nil
}

// EncodeJSON writes the tree as indented JSON
func EncodeJSON(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return errors.Errorf("encoding JSON tree: %w", err)
	}
	return nil
}

// EncodeYAML writes the tree as YAML
func EncodeYAML(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return errors.Errorf("encoding YAML tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return errors.Errorf("flushing YAML tree: %w", err)
	}
	return nil
}

func fromMap(raw map[string]any) (*Node, error) {
	typ, ok := raw[keyType].(string)
	if !ok || typ == "" {
		return nil, errors.Errorf("node is missing a string %q field", keyType)
	}
	n := &Node{Type: typ}

	if v, ok := raw[keyValue]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("%s node: %q must be a string, got %T", typ, keyValue, v)
		}
		n.Value = s
	}

	if v, ok := raw[keyChildren]; ok {
		list, ok := v.([]any)
		if !ok {
			return nil, errors.Errorf("%s node: %q must be a list, got %T", typ, keyChildren, v)
		}
		n.Children = make([]*Node, 0, len(list))
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, errors.Errorf("%s node: child %d must be an object, got %T", typ, i, item)
			}
			child, err := fromMap(m)
			if err != nil {
				return nil, errors.Errorf("%s node: child %d: %w", typ, i, err)
			}
			n.Children = append(n.Children, child)
		}
	}

	for k, v := range raw {
		if k == keyType || k == keyValue || k == keyChildren {
			continue
		}
		if n.Props == nil {
			n.Props = map[string]any{}
		}
		n.Props[k] = v
	}

	return n, nil
}

// hasValue keeps a parent's value as well; text nodes always carry one
func (n *Node) hasValue() bool {
	return n.Value != "" || (n.Children == nil && n.Type == TypeText)
}

func (n *Node) propKeys() []string {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		if slices.Contains([]string{keyType, keyValue, keyChildren}, k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
