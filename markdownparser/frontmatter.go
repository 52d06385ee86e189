package markdownparser

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// parseFrontMatter reads a leading "---" delimited YAML block. It returns
// the metadata and the byte length of the block including both delimiters.
func parseFrontMatter(content string) (map[string]any, int, error) {
	if !strings.HasPrefix(content, "---\n") {
		return map[string]any{}, 0, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return nil, 0, ErrInvalidFrontMatter
	}

	endIndex += 4

	var frontMatter map[string]any

	err := yaml.Unmarshal([]byte(content[4:endIndex]), &frontMatter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if frontMatter == nil {
		frontMatter = map[string]any{}
	}

	return frontMatter, endIndex + 4, nil
}
