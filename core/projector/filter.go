package projector

import (
	"context"
	"strconv"
	"strings"

	"blockpress-api/core/domain"
)

// Predicate asks for rows whose property equals one of Values
type Predicate struct {
	Property string
	Values   []string
}

// FilterBuilder turns predicates into the store's filter wire shape using
// each property's declared type
type FilterBuilder struct {
	schemas *SchemaCache
}

// NewFilterBuilder creates a builder backed by schemas
func NewFilterBuilder(schemas *SchemaCache) *FilterBuilder {
	return &FilterBuilder{schemas: schemas}
}

// Build returns the filter for collectionID, or nil when no predicate has values
func (b *FilterBuilder) Build(ctx context.Context, collectionID string, predicates ...Predicate) (domain.Filter, error) {
	if !hasValues(predicates) {
		return nil, nil
	}
	types, err := b.schemas.PropertyTypes(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return BuildFilter(types, predicates...), nil
}

// BuildFilter combines predicates: values of one property are OR'ed,
// distinct properties are AND'ed. Property names are matched against the
// schema case-insensitively; unknown properties use the select shape.
func BuildFilter(types map[string]string, predicates ...Predicate) domain.Filter {
	byName := make(map[string]string, len(types))
	for name := range types {
		byName[normalizeName(name)] = name
	}

	var clauses []interface{}
	for _, p := range predicates {
		name, propType := p.Property, ""
		if declared, ok := byName[normalizeName(p.Property)]; ok {
			name, propType = declared, types[declared]
		}

		var alternatives []interface{}
		for _, v := range p.Values {
			if v = strings.TrimSpace(v); v != "" {
				alternatives = append(alternatives, Equals(name, propType, v))
			}
		}

		switch len(alternatives) {
		case 0:
		case 1:
			clauses = append(clauses, alternatives[0])
		default:
			clauses = append(clauses, domain.Filter{"or": alternatives})
		}
	}

	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0].(domain.Filter)
	default:
		return domain.Filter{"and": clauses}
	}
}

// Equals builds a single equality predicate shaped by the property type
func Equals(property, propType, value string) domain.Filter {
	switch propType {
	case TypeStatus:
		return domain.Filter{"property": property, "status": map[string]interface{}{"equals": value}}
	case TypeMultiSelect:
		return domain.Filter{"property": property, "multi_select": map[string]interface{}{"contains": value}}
	case TypeCheckbox:
		checked, _ := strconv.ParseBool(value)
		return domain.Filter{"property": property, "checkbox": map[string]interface{}{"equals": checked}}
	case TypeRichText, TypeTitle, TypeURL, TypeEmail, TypePhone:
		return domain.Filter{"property": property, propType: map[string]interface{}{"equals": value}}
	default:
		return domain.Filter{"property": property, "select": map[string]interface{}{"equals": value}}
	}
}

func hasValues(predicates []Predicate) bool {
	for _, p := range predicates {
		for _, v := range p.Values {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	return false
}
