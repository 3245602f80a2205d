package schema

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Parser decodes schema documents of one file format.
type Parser interface {
	// Parse decodes content into a Schema, keeping field declaration order.
	Parse(ctx context.Context, content []byte) (*Schema, error)

	// SupportsFileExtension checks if the parser supports a given file extension.
	// The extension may or may not include a leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil when
// the extension is not supported.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// JSONParser implements Parser for JSON documents.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	doc, err := decodeJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	return build(doc, "")
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "json")
}

// YAMLParser implements Parser for YAML documents.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	doc, err := decodeYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseYAML, err)
	}
	return build(doc, "")
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// ParseFile decodes content using the parser matching filename's extension.
func ParseFile(ctx context.Context, filename string, content []byte) (*Schema, error) {
	parser := NewParserForFile(filename)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
	s, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
