package changelog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DumpFormat selects the encoding used by Encode.
type DumpFormat string

const (
	DumpJSON   DumpFormat = "json"
	DumpYAML   DumpFormat = "yaml"
	DumpTOML   DumpFormat = "toml"
	DumpPretty DumpFormat = "pretty"
)

// Encode writes doc in the requested structured format.
func Encode(w io.Writer, doc *Document, format DumpFormat) error {
	switch format {
	case DumpJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case DumpTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported document format %q (expected json, yaml or toml)", format)
	}
}

// EncodeTokens writes tokens one per line (pretty) or as a JSON array.
func EncodeTokens(w io.Writer, tokens []Token, format DumpFormat) error {
	switch format {
	case DumpJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	case DumpPretty, "":
		for i, tok := range tokens {
			if _, err := fmt.Fprintf(w, "%3d: %-12s %q at %d:%d\n", i+1, tok.Kind, tok.Text, tok.Row+1, tok.Col+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported token format %q (expected pretty or json)", format)
	}
}
