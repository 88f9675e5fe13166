// Package utm decodes per-lead attribution blobs (the CRM's utm_hit column)
// into flat utm_* attributes used as grouping keys.
package utm

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// None is the grouping value for an attribute the lead does not carry.
const None = "none"

// Well-known attribute keys.
const (
	KeySource   = "utm_source"
	KeyCampaign = "utm_campaign"
	KeyMedium   = "utm_medium"
	KeyContent  = "utm_content"
	KeyTerm     = "utm_term"
)

const prefix = "utm_"

// Kind tags which variant a Value holds.
type Kind int

const (
	Missing Kind = iota
	Mapping
	Text
)

// Value is a raw attribution cell: absent, an already-decoded mapping, or a
// serialized mapping literal.
type Value struct {
	Kind    Kind
	Mapping map[string]any
	Text    string
}

// MissingValue returns an absent attribution value.
func MissingValue() Value { return Value{Kind: Missing} }

// MappingValue wraps an already-decoded mapping.
func MappingValue(m map[string]any) Value { return Value{Kind: Mapping, Mapping: m} }

// TextValue wraps a serialized literal. Blank and NaN-like text is Missing.
func TextValue(s string) Value {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null", "{}":
		return MissingValue()
	}
	return Value{Kind: Text, Text: s}
}

// Extract decodes v into a mapping. Missing yields an empty mapping; a text
// literal that cannot be decoded as a mapping yields an empty mapping and
// ok=false. The result is never nil.
func Extract(v Value) (m map[string]any, ok bool) {
	switch v.Kind {
	case Mapping:
		if v.Mapping == nil {
			return map[string]any{}, true
		}
		return v.Mapping, true
	case Text:
		decoded, err := decodeLiteral(v.Text)
		if err != nil {
			return map[string]any{}, false
		}
		return decoded, true
	default:
		return map[string]any{}, true
	}
}

// Decode extracts and flattens v in one step.
func Decode(v Value) (Attributes, bool) {
	m, ok := Extract(v)
	return Flatten(m), ok
}

// decodeLiteral parses a dict literal in JSON or Python repr syntax. Only
// literal structure is accepted: there is no evaluation.
func decodeLiteral(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, eris.New("utm: not a mapping literal")
	}

	var out map[string]any
	if err := yaml.Unmarshal([]byte(toJSONLiteral(s)), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// toJSONLiteral rewrites Python repr quirks into JSON: single-quoted strings
// become double-quoted and the None/True/False keywords become null/true/false.
func toJSONLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			end := quotedEnd(s, i)
			body := s[i+1 : end]
			if c == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `\"`, `"`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			b.WriteByte('"')
			b.WriteString(body)
			b.WriteByte('"')
			i = end + 1
		case isIdentStart(c):
			j := i
			for j < len(s) && (isIdentStart(s[j]) || (s[j] >= '0' && s[j] <= '9')) {
				j++
			}
			switch word := s[i:j]; word {
			case "None":
				b.WriteString("null")
			case "True":
				b.WriteString("true")
			case "False":
				b.WriteString("false")
			default:
				b.WriteString(word)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// quotedEnd returns the index of the quote closing the string opened at
// start, honoring backslash escapes. Unterminated strings return len(s).
func quotedEnd(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return len(s)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Attributes is a flat utm_* attribute set.
type Attributes map[string]string

// Flatten renames the keys of m into the utm_ namespace in snake_case.
// Nested mappings are joined with '_'; null values are dropped.
func Flatten(m map[string]any) Attributes {
	out := make(Attributes, len(m))
	flattenInto(out, "", m)
	return out
}

func flattenInto(out Attributes, parent string, m map[string]any) {
	for k, v := range m {
		key := snake(k)
		if parent != "" {
			key = parent + "_" + key
		}
		switch val := v.(type) {
		case nil:
		case map[string]any:
			flattenInto(out, key, val)
		case string:
			if strings.TrimSpace(val) != "" {
				out[Key(key)] = strings.TrimSpace(val)
			}
		default:
			out[Key(key)] = fmt.Sprint(val)
		}
	}
}

// Key maps a raw attribute name ("utmSource", "source", "UTM_SOURCE") to its
// canonical column name ("utm_source").
func Key(name string) string {
	k := snake(name)
	if k == "utm" || strings.HasPrefix(k, prefix) {
		return k
	}
	return prefix + k
}

// Get returns the value for key (raw or canonical form), or None.
func (a Attributes) Get(key string) string {
	if v, ok := a[Key(key)]; ok && v != "" {
		return v
	}
	return None
}

// Fill copies entries from other whose keys a does not already have.
func (a Attributes) Fill(other Attributes) {
	for k, v := range other {
		if _, ok := a[k]; !ok {
			a[k] = v
		}
	}
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// snake converts camelCase and punctuated names to lower snake_case.
func snake(s string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(s))
	lastUnderscore := true
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && !lastUnderscore && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
