package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

// newValidator reports fields by their config key, so the namespace of
// Configuration.Show.Last reads "Configuration.show.last".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError locates a rejected configuration value. Source is the
// config file or CLOGFMT_* variable the value came from; Line and Column
// are set for YAML files.
type ValidationError struct {
	Source  string
	Line    int
	Column  int
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&sb, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&sb, ":%d", e.Column)
		}
	}
	if e.Key != "" {
		sb.WriteString(": " + e.Key)
	}
	sb.WriteString(": " + e.Message)
	return sb.String()
}

// keyOrigin is where the effective value of a key was set.
type keyOrigin struct {
	source       string
	line, column int
}

// yamlKeyOrigins parses a YAML config and returns the position of every key
// it sets. Syntax errors and unknown keys are reported at their position.
func yamlKeyOrigins(path string, data []byte) (map[string]keyOrigin, error) {
	origins := map[string]keyOrigin{}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlSyntaxError(path, err)
	}
	if len(doc.Content) == 0 {
		return origins, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return origins, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ValidationError{Source: path, Line: root.Line, Column: root.Column,
			Message: "expected a mapping of configuration keys"}
	}
	return origins, collectKeys(path, root, "", origins)
}

func collectKeys(path string, mapping *yaml.Node, prefix string, origins map[string]keyOrigin) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		key := keyNode.Value
		if prefix != "" {
			key = prefix + "." + key
		}

		if valueNode.Kind == yaml.MappingNode && isKeyGroup(key) {
			if err := collectKeys(path, valueNode, key, origins); err != nil {
				return err
			}
			continue
		}
		if _, ok := KnownKeys[key]; !ok {
			return &ValidationError{Source: path, Line: keyNode.Line, Column: keyNode.Column,
				Key: key, Message: "unknown configuration key"}
		}
		origins[key] = keyOrigin{source: path, line: keyNode.Line, column: keyNode.Column}
	}
	return nil
}

// isKeyGroup reports whether key is the parent of a dotted key, like "show".
func isKeyGroup(key string) bool {
	for known := range KnownKeys {
		if strings.HasPrefix(known, key+".") {
			return true
		}
	}
	return false
}

// yamlSyntaxError turns "yaml: line 3: mapping values are not allowed in
// this context" into a located ValidationError.
func yamlSyntaxError(path string, err error) *ValidationError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var line int
	if n, _ := fmt.Sscanf(msg, "line %d:", &line); n == 1 {
		_, msg, _ = strings.Cut(msg, ": ")
	}
	return &ValidationError{Source: path, Line: line, Message: msg}
}

// validateValues checks cfg against its struct rules and reports the first
// failure at the origin of the offending key.
func validateValues(cfg *Configuration, origins map[string]keyOrigin) error {
	err := validate.Struct(cfg)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fieldErr := fieldErrs[0]
	_, key, _ := strings.Cut(fieldErr.Namespace(), ".")
	origin, ok := origins[key]
	if !ok {
		origin = keyOrigin{source: "defaults"}
	}
	return &ValidationError{
		Source:  origin.source,
		Line:    origin.line,
		Column:  origin.column,
		Key:     key,
		Message: ruleMessage(fieldErr),
	}
}

func ruleMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	default:
		return "failed validation: " + fieldErr.Tag()
	}
}
