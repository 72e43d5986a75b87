package formatter

import (
	"bytes"
	"fmt"

	"github.com/samsontands/RAG/internal/entity"
	"gopkg.in/yaml.v3"
)

const (
	yamlContentType   = "application/yaml"
	yamlFileExtension = ".yaml"
)

type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (yf *YAMLFormatter) Format(transcript *entity.Transcript) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(transcript); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func (yf *YAMLFormatter) ContentType() string {
	return yamlContentType
}

func (yf *YAMLFormatter) FileExtension() string {
	return yamlFileExtension
}
