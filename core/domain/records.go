// ABOUTME: Typed records projected from collection rows
// ABOUTME: Content catalog entries, event listings and form field descriptors

package domain

import "time"

// ContentEntry is a content catalog row
type ContentEntry struct {
	ID          string     `json:"id" doc:"Document identifier (32-character form)"`
	Title       string     `json:"title" doc:"Entry title"`
	Summary     string     `json:"summary,omitempty" doc:"Short description"`
	Slug        string     `json:"slug,omitempty" doc:"URL slug"`
	Status      string     `json:"status,omitempty" doc:"Publication status"`
	Category    string     `json:"category,omitempty" doc:"Primary category"`
	Tags        []string   `json:"tags,omitempty" doc:"Tags"`
	Cover       string     `json:"cover,omitempty" doc:"Cover image URL"`
	PublishedAt *time.Time `json:"published_at,omitempty" doc:"Publication date"`
	UpdatedAt   time.Time  `json:"updated_at" doc:"Last edit time"`
}

// EventEntry is an event or listing row
type EventEntry struct {
	ID         string     `json:"id" doc:"Document identifier (32-character form)"`
	Title      string     `json:"title" doc:"Event title"`
	Summary    string     `json:"summary,omitempty" doc:"Short description"`
	Status     string     `json:"status,omitempty" doc:"Event status"`
	Category   string     `json:"category,omitempty" doc:"Event category"`
	Tags       []string   `json:"tags,omitempty" doc:"Tags"`
	Location   string     `json:"location,omitempty" doc:"Venue or location"`
	Link       string     `json:"link,omitempty" doc:"External link"`
	Cover      string     `json:"cover,omitempty" doc:"Cover image URL"`
	CoverColor *RGBColor  `json:"cover_color,omitempty" doc:"Prominent cover color"`
	StartsAt   *time.Time `json:"starts_at,omitempty" doc:"Start of the event"`
	EndsAt     *time.Time `json:"ends_at,omitempty" doc:"End of the event"`
	Capacity   *int       `json:"capacity,omitempty" doc:"Number of seats"`
}

// FieldType is the input kind of a form field
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldMulti    FieldType = "multi_select"
	FieldCheckbox FieldType = "checkbox"
	FieldFile     FieldType = "file"
	FieldURL      FieldType = "url"
)

// FormField describes one input of a dynamic form
type FormField struct {
	ID          string    `json:"id" doc:"Row identifier"`
	Name        string    `json:"name" doc:"Submission key"`
	Label       string    `json:"label" doc:"Display label"`
	Type        FieldType `json:"type" doc:"Input type"`
	Required    bool      `json:"required" doc:"Whether a value is mandatory"`
	Placeholder string    `json:"placeholder,omitempty" doc:"Placeholder text"`
	HelpText    string    `json:"help_text,omitempty" doc:"Help text"`
	Options     []string  `json:"options,omitempty" doc:"Choices for select inputs"`
	Order       int       `json:"order" doc:"Position in the form"`
}

// FormSchema is an ordered set of form fields plus a cover image
type FormSchema struct {
	ID     string      `json:"id" doc:"Form collection identifier"`
	Title  string      `json:"title,omitempty" doc:"Form title"`
	Cover  *string     `json:"cover,omitempty" doc:"Cover image URL"`
	Fields []FormField `json:"fields" doc:"Fields in display order"`
}

// ContentListing is a page of content entries
type ContentListing struct {
	Items      []ContentEntry `json:"items"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

// EventListing is a page of event entries
type EventListing struct {
	Items      []EventEntry `json:"items"`
	HasMore    bool         `json:"has_more"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}
