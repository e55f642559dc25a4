package config

import (
	"bytes"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/hookhub/pkg/errors"
)

// Supported output formats for Generate
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Generate renders cfg in the given format
func Generate(cfg *Config, format string) (string, error) {
	if cfg == nil {
		return "", errors.New(errors.ErrInvalidInput, "no configuration to render")
	}

	switch strings.ToLower(format) {
	case FormatTOML, "":
		var buf bytes.Buffer
		enc := gotoml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to render TOML")
		}
		return buf.String(), nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to render YAML")
		}
		if err := enc.Close(); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to render YAML")
		}
		return buf.String(), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown format %q, expected toml or yaml", format).
			WithDetail("format", format)
	}
}

// CommentedDefaults returns the defaults file with every value commented
// out, ready to be saved as a starting hookhub.toml
func CommentedDefaults() string {
	return commentOutConfigValues(DefaultContent())
}

// commentOutConfigValues comments out every line that is not blank, a
// comment or a section header
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
