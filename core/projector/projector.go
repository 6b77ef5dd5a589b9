// ABOUTME: Document projector maps collection rows into content, event and form records
// ABOUTME: Missing or mistyped properties leave zero values; projection never fails

package projector

import (
	"regexp"
	"strings"

	"blockpress-api/core/domain"
	"blockpress-api/core/ids"
	"blockpress-api/pkg/utils/parse"
	"blockpress-api/pkg/utils/timeparse"
)

// Aliases accepted for each record field, most specific first
var (
	summaryAliases   = []string{"summary", "description", "excerpt", "subtitle"}
	statusAliases    = []string{"status", "state"}
	categoryAliases  = []string{"category", "type", "section"}
	tagAliases       = []string{"tags", "labels", "topics"}
	coverAliases     = []string{"cover", "image", "thumbnail", "banner"}
	publishedAliases = []string{"published at", "published", "publish date", "date"}
	locationAliases  = []string{"location", "venue", "place", "where"}
	linkAliases      = []string{"link", "url", "website", "registration"}
	startAliases     = []string{"date", "when", "event date", "starts at", "start"}
	endAliases       = []string{"ends at", "end date", "end"}
	capacityAliases  = []string{"capacity", "seats", "spots"}
)

// ProjectContent maps a content catalog row
func ProjectContent(row domain.Row) domain.ContentEntry {
	props := newProperties(row.Properties)

	entry := domain.ContentEntry{
		ID:        ids.Compact(row.ID),
		Title:     title(props),
		Summary:   props.text(summaryAliases...),
		Slug:      props.text("slug", "path"),
		Status:    props.choice(statusAliases...),
		Category:  props.choice(categoryAliases...),
		Tags:      props.tags(tagAliases...),
		Cover:     cover(row, props),
		UpdatedAt: row.LastEditedTime,
	}
	if d := props.date(publishedAliases...); d != nil {
		entry.PublishedAt = timeparse.ParsePtr(d.Start)
	}
	if entry.Slug == "" {
		entry.Slug = Slugify(entry.Title)
	}
	return entry
}

// ProjectEvent maps an event row. A date range sets both StartsAt and
// EndsAt; a separate end date property overrides the range end.
func ProjectEvent(row domain.Row) domain.EventEntry {
	props := newProperties(row.Properties)

	entry := domain.EventEntry{
		ID:       ids.Compact(row.ID),
		Title:    title(props),
		Summary:  props.text(summaryAliases...),
		Status:   props.choice(statusAliases...),
		Category: props.choice(categoryAliases...),
		Tags:     props.tags(tagAliases...),
		Location: props.text(locationAliases...),
		Link:     props.text(linkAliases...),
		Cover:    cover(row, props),
	}

	if d := props.date(startAliases...); d != nil {
		entry.StartsAt = timeparse.ParsePtr(d.Start)
		entry.EndsAt = timeparse.ParsePtr(d.End)
	}
	if d := props.date(endAliases...); d != nil {
		entry.EndsAt = timeparse.ParsePtr(d.Start)
	}

	if n, ok := props.number(capacityAliases...); ok {
		c := int(n)
		entry.Capacity = &c
	} else if n, ok := parse.LooseInt(props.text(capacityAliases...)); ok {
		entry.Capacity = &n
	}
	return entry
}

// fieldTypes maps author-facing type names to form field types
var fieldTypes = map[string]domain.FieldType{
	"text":        domain.FieldText,
	"shorttext":   domain.FieldText,
	"textarea":    domain.FieldTextarea,
	"longtext":    domain.FieldTextarea,
	"paragraph":   domain.FieldTextarea,
	"email":       domain.FieldEmail,
	"phone":       domain.FieldPhone,
	"tel":         domain.FieldPhone,
	"number":      domain.FieldNumber,
	"date":        domain.FieldDate,
	"select":      domain.FieldSelect,
	"dropdown":    domain.FieldSelect,
	"multiselect": domain.FieldMulti,
	"checkbox":    domain.FieldCheckbox,
	"boolean":     domain.FieldCheckbox,
	"file":        domain.FieldFile,
	"upload":      domain.FieldFile,
	"url":         domain.FieldURL,
	"link":        domain.FieldURL,
}

// ProjectFormField maps a form schema row into a field descriptor
func ProjectFormField(row domain.Row) domain.FormField {
	props := newProperties(row.Properties)

	field := domain.FormField{
		ID:          ids.Compact(row.ID),
		Label:       title(props),
		Name:        props.text("name", "key", "field name", "field"),
		Required:    props.checkbox("required", "mandatory"),
		Placeholder: props.text("placeholder"),
		HelpText:    props.text("help text", "help", "hint", "description"),
		Type:        domain.FieldText,
	}

	if t, ok := fieldTypes[normalizeName(props.text("type", "field type", "input"))]; ok {
		field.Type = t
	}
	if field.Name == "" {
		field.Name = strings.ReplaceAll(Slugify(field.Label), "-", "_")
	}
	if opts := props.tags("options", "choices"); len(opts) > 0 {
		field.Options = opts
	}
	if n, ok := props.number("order", "position", "sort"); ok {
		field.Order = int(n)
	}
	return field
}

// title reads the row's title property regardless of its name
func title(props properties) string {
	if v, ok := props.byType(TypeTitle); ok {
		return valueText(v)
	}
	return props.text("title", "name")
}

func cover(row domain.Row, props properties) string {
	if row.Cover != "" {
		return row.Cover
	}
	return props.file(coverAliases...)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and joins its alphanumeric runs with hyphens
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
