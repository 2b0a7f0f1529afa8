package usecases

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// ExtractJSON returns the first balanced [...] or {...} span in s.
// Brackets inside string literals are ignored, so markdown fences and
// prose around the payload are tolerated.
func ExtractJSON(s string) (string, error) {
	for start := 0; start < len(s); start++ {
		if s[start] != '[' && s[start] != '{' {
			continue
		}
		if end, ok := balancedEnd(s, start); ok {
			return s[start : end+1], nil
		}
	}
	return "", domain.ErrNoJSON
}

// balancedEnd returns the index closing the bracket at start.
func balancedEnd(s string, start int) (int, bool) {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// record is the loose shape models return; test_data values may be any scalar.
type record struct {
	Title           string         `json:"title"`
	Goal            string         `json:"goal"`
	Preconditions   []string       `json:"preconditions"`
	TestData        map[string]any `json:"test_data"`
	Steps           []string       `json:"steps"`
	ExpectedResults []string       `json:"expected_results"`
	NegativeCases   []string       `json:"negative_cases"`
	BoundaryCases   []string       `json:"boundary_cases"`
}

// DecodeUseCases parses a delegate response. The payload is the first JSON
// span: an array of use-case records, an object whose use_cases field holds
// one, or a single use-case object. Zero use-cases is an error.
func DecodeUseCases(response string) ([]domain.UseCase, error) {
	span, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var records []record
	if strings.HasPrefix(span, "[") {
		if err := json.Unmarshal([]byte(span), &records); err != nil {
			return nil, fmt.Errorf("decoding use-case array: %w", err)
		}
	} else {
		var wrapper struct {
			UseCases []record `json:"use_cases"`
			record
		}
		if err := json.Unmarshal([]byte(span), &wrapper); err != nil {
			return nil, fmt.Errorf("decoding use-case object: %w", err)
		}
		records = wrapper.UseCases
		if wrapper.UseCases == nil && strings.TrimSpace(wrapper.Title) != "" {
			records = []record{wrapper.record}
		}
	}

	out := make([]domain.UseCase, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		uc := domain.UseCase{
			Title:           r.Title,
			Goal:            r.Goal,
			Preconditions:   r.Preconditions,
			Steps:           r.Steps,
			ExpectedResults: r.ExpectedResults,
			NegativeCases:   r.NegativeCases,
			BoundaryCases:   r.BoundaryCases,
		}
		if len(r.TestData) > 0 {
			uc.TestData = make(map[string]string, len(r.TestData))
			for k, v := range r.TestData {
				uc.TestData[k] = scalarString(v)
			}
		}
		out = append(out, uc)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("response contained no use-cases")
	}
	return out, nil
}

func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	case map[string]any, []any:
		b, _ := json.Marshal(x)
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
