package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// SetValue writes key to the YAML config file at path and returns the typed
// value written. The file is created when missing; comments and other keys
// are kept. The value must pass the same checks as a loaded configuration.
func SetValue(path, key, raw string) (interface{}, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, fmt.Errorf("%s: only YAML config files can be edited", path)
	}

	value, err := ParseValue(key, raw)
	if err != nil {
		return nil, err
	}
	if err := checkValue(path, key, value); err != nil {
		return nil, err
	}

	var doc yaml.Node
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := yamlKeyOrigins(path, data); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, yamlSyntaxError(path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := setNestedValue(&doc, strings.Split(key, "."), value); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return value, nil
}

// checkValue validates value for key on top of the defaults.
func checkValue(path, key string, value interface{}) error {
	k := koanf.New(".")
	loadDefaults(k)
	if err := k.Set(key, value); err != nil {
		return err
	}
	_, err := finalizeConfig(k, map[string]keyOrigin{key: {source: path}})
	return err
}

// setNestedValue sets the scalar at keyPath in doc, creating the document
// and intermediate mappings as needed. Comments on an existing value stay.
func setNestedValue(doc *yaml.Node, keyPath []string, value interface{}) error {
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	node := doc.Content[0]
	for i, part := range keyPath {
		if node.Kind != yaml.MappingNode {
			return fmt.Errorf("%s is not a mapping", strings.Join(keyPath[:i], "."))
		}

		var child *yaml.Node
		for j := 0; j+1 < len(node.Content); j += 2 {
			if node.Content[j].Value == part {
				child = node.Content[j+1]
				break
			}
		}
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: part}, child)
		}

		if i == len(keyPath)-1 {
			var encoded yaml.Node
			if err := encoded.Encode(value); err != nil {
				return err
			}
			child.Kind, child.Tag, child.Value, child.Style = encoded.Kind, encoded.Tag, encoded.Value, encoded.Style
			child.Content = nil
			return nil
		}
		node = child
	}
	return nil
}
