package review

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object found in response")

// extractContent pulls a Content out of raw model output. The model is asked
// for bare JSON, but responses sometimes arrive wrapped in markdown fences or
// surrounded by prose, so this strips fences and takes the first balanced
// object.
func extractContent(raw string) (Content, error) {
	jsonStr := firstJSONBlock(stripCodeFences(raw))
	if jsonStr == "" {
		return Content{}, errNoJSON
	}
	var c Content
	if err := json.Unmarshal([]byte(jsonStr), &c); err != nil {
		return Content{}, err
	}
	return c, nil
}

func stripCodeFences(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// firstJSONBlock finds the first balanced { ... } block, honoring strings.
func firstJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
