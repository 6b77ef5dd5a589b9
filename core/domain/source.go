// ABOUTME: Shapes exchanged with the external document store
// ABOUTME: Pages of children, collection schemas, typed property values and queries

package domain

import "time"

// ChildrenPage is one cursor page of a node's direct children
type ChildrenPage struct {
	Results    []Block
	HasMore    bool
	NextCursor string
}

// PageMeta is the metadata of a single document
type PageMeta struct {
	ID             string
	Title          string
	Cover          string
	Icon           string
	URL            string
	LastEditedTime time.Time
	Properties     map[string]PropertyValue
}

// PropertySchema declares one property of a collection
type PropertySchema struct {
	ID      string
	Name    string
	Type    string
	Options []SelectOption
}

// CollectionMeta describes a collection: its title, cover and schema
type CollectionMeta struct {
	ID         string
	Title      string
	Cover      string
	Properties map[string]PropertySchema
}

// SelectOption is a select, multi-select or status choice
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is a date or date range
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// FileRef is an attached file, either hosted by the store or external
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PropertyValue is a typed property of a collection row. Only the field
// matching Type is meaningful.
type PropertyValue struct {
	Type        string
	Title       []TextSpan
	RichText    []TextSpan
	Select      *SelectOption
	Status      *SelectOption
	MultiSelect []SelectOption
	Date        *DateValue
	URL         *string
	Email       *string
	Phone       *string
	Checkbox    *bool
	Number      *float64
	Files       []FileRef
}

// Row is a single-level database entry
type Row struct {
	ID             string
	URL            string
	Cover          string
	CreatedTime    time.Time
	LastEditedTime time.Time
	Properties     map[string]PropertyValue
}

// Filter is a filter tree in the store's wire shape
type Filter map[string]interface{}

// Sort orders query results by a property or timestamp
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// CollectionQuery is a filtered, paginated collection query
type CollectionQuery struct {
	Filter   Filter
	Sorts    []Sort
	Cursor   string
	PageSize int
}

// QueryPage is one cursor page of collection rows
type QueryPage struct {
	Results    []Row
	HasMore    bool
	NextCursor string
}
