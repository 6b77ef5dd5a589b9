// ABOUTME: Case-insensitive property lookup over collection rows
// ABOUTME: Values are only read when the declared property type matches

// Package projector maps flat collection rows into typed records and builds
// type-aware collection filters.
package projector

import (
	"sort"
	"strconv"
	"strings"

	"blockpress-api/core/domain"
	"blockpress-api/core/richtext"
)

// Property types as declared by the store
const (
	TypeTitle       = "title"
	TypeRichText    = "rich_text"
	TypeSelect      = "select"
	TypeStatus      = "status"
	TypeMultiSelect = "multi_select"
	TypeDate        = "date"
	TypeURL         = "url"
	TypeEmail       = "email"
	TypePhone       = "phone_number"
	TypeCheckbox    = "checkbox"
	TypeNumber      = "number"
	TypeFiles       = "files"
)

// normalizeName folds case and drops separators so "Published At",
// "published_at" and "publishedAt" compare equal
func normalizeName(name string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// properties indexes a row's property map by normalized name
type properties struct {
	values map[string]domain.PropertyValue
	index  map[string]string
}

func newProperties(values map[string]domain.PropertyValue) properties {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	index := make(map[string]string, len(names))
	for _, name := range names {
		key := normalizeName(name)
		if _, taken := index[key]; !taken {
			index[key] = name
		}
	}
	return properties{values: values, index: index}
}

// find returns the first alias whose property has one of the accepted types
func (p properties) find(aliases []string, types ...string) (domain.PropertyValue, bool) {
	for _, alias := range aliases {
		name, ok := p.index[normalizeName(alias)]
		if !ok {
			continue
		}
		v := p.values[name]
		for _, t := range types {
			if v.Type == t {
				return v, true
			}
		}
	}
	return domain.PropertyValue{}, false
}

// byType returns the first property of the given type in name order
func (p properties) byType(t string) (domain.PropertyValue, bool) {
	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if p.values[name].Type == t {
			return p.values[name], true
		}
	}
	return domain.PropertyValue{}, false
}

// text reads any text-like property value as a plain string
func (p properties) text(aliases ...string) string {
	v, ok := p.find(aliases, TypeTitle, TypeRichText, TypeSelect, TypeStatus, TypeURL, TypeEmail, TypePhone, TypeNumber)
	if !ok {
		return ""
	}
	return valueText(v)
}

// choice reads a select or status value
func (p properties) choice(aliases ...string) string {
	v, ok := p.find(aliases, TypeStatus, TypeSelect)
	if !ok {
		return ""
	}
	return valueText(v)
}

// tags reads a multi-select as option names, or a comma separated text
func (p properties) tags(aliases ...string) []string {
	v, ok := p.find(aliases, TypeMultiSelect, TypeRichText)
	if !ok {
		return nil
	}
	if v.Type == TypeMultiSelect {
		var names []string
		for _, opt := range v.MultiSelect {
			if opt.Name != "" {
				names = append(names, opt.Name)
			}
		}
		return names
	}
	return splitList(richtext.PlainText(v.RichText))
}

func (p properties) date(aliases ...string) *domain.DateValue {
	v, ok := p.find(aliases, TypeDate)
	if !ok || v.Date == nil || v.Date.Start == "" {
		return nil
	}
	return v.Date
}

func (p properties) checkbox(aliases ...string) bool {
	v, ok := p.find(aliases, TypeCheckbox)
	return ok && v.Checkbox != nil && *v.Checkbox
}

func (p properties) number(aliases ...string) (float64, bool) {
	v, ok := p.find(aliases, TypeNumber)
	if !ok || v.Number == nil {
		return 0, false
	}
	return *v.Number, true
}

// file returns the first file URL of a files property or a url property
func (p properties) file(aliases ...string) string {
	v, ok := p.find(aliases, TypeFiles, TypeURL)
	if !ok {
		return ""
	}
	if v.Type == TypeURL {
		return valueText(v)
	}
	for _, f := range v.Files {
		if f.URL != "" {
			return f.URL
		}
	}
	return ""
}

// valueText renders a scalar property value as text
func valueText(v domain.PropertyValue) string {
	switch v.Type {
	case TypeTitle:
		return strings.TrimSpace(richtext.PlainText(v.Title))
	case TypeRichText:
		return strings.TrimSpace(richtext.PlainText(v.RichText))
	case TypeSelect:
		if v.Select != nil {
			return v.Select.Name
		}
	case TypeStatus:
		if v.Status != nil {
			return v.Status.Name
		}
	case TypeURL:
		return deref(v.URL)
	case TypeEmail:
		return deref(v.Email)
	case TypePhone:
		return deref(v.Phone)
	case TypeNumber:
		if v.Number != nil {
			return strconv.FormatFloat(*v.Number, 'f', -1, 64)
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
