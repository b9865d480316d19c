package commonmark

import "fmt"

// DecodeConfig converts an untyped configuration value, such as the
// "commonmark" entry of a decoded YAML site config, into a Config.
//
// Accepted shapes are Config, *Config, map[string][]string, and
// map[string]any or map[any]any with "options" and "extensions" keys
// holding []string or []any. Non-string list elements are stringified so
// the resolver reports them. Anything else, including nil and maps whose
// values are not lists such as map[string]string, decodes to the empty
// Config.
func DecodeConfig(raw any) Config {
	switch v := raw.(type) {
	case Config:
		return v
	case *Config:
		if v == nil {
			return Config{}
		}
		return *v
	case map[string][]string:
		return Config{
			Options:    decodeTokens(v["options"]),
			Extensions: decodeTokens(v["extensions"]),
		}
	case map[string]any:
		return Config{
			Options:    decodeTokens(v["options"]),
			Extensions: decodeTokens(v["extensions"]),
		}
	case map[any]any:
		return Config{
			Options:    decodeTokens(v["options"]),
			Extensions: decodeTokens(v["extensions"]),
		}
	default:
		return Config{}
	}
}

// decodeTokens returns v as a token list, or nil when v is not a list.
func decodeTokens(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		tokens := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				tokens = append(tokens, s)
				continue
			}
			tokens = append(tokens, fmt.Sprint(item))
		}
		return tokens
	default:
		return nil
	}
}
