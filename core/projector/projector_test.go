package projector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockpress-api/core/domain"
)

const rowID = "3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8"

func titleProp(s string) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeTitle, Title: []domain.TextSpan{{Text: s}}}
}

func textProp(s string) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeRichText, RichText: []domain.TextSpan{{Text: s}}}
}

func selectProp(s string) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeSelect, Select: &domain.SelectOption{Name: s}}
}

func statusProp(s string) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeStatus, Status: &domain.SelectOption{Name: s}}
}

func multiProp(names ...string) domain.PropertyValue {
	v := domain.PropertyValue{Type: TypeMultiSelect}
	for _, n := range names {
		v.MultiSelect = append(v.MultiSelect, domain.SelectOption{Name: n})
	}
	return v
}

func dateProp(start, end string) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeDate, Date: &domain.DateValue{Start: start, End: end}}
}

func numberProp(n float64) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeNumber, Number: &n}
}

func checkboxProp(b bool) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeCheckbox, Checkbox: &b}
}

func urlProp(s string) domain.PropertyValue {
	return domain.PropertyValue{Type: TypeURL, URL: &s}
}

func TestProjectContent(t *testing.T) {
	edited := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := domain.Row{
		ID:             rowID,
		LastEditedTime: edited,
		Properties: map[string]domain.PropertyValue{
			"Name":         titleProp("Getting Started"),
			"DESCRIPTION":  textProp("How to begin"),
			"Status":       statusProp("Published"),
			"category":     selectProp("Guides"),
			"Tags":         multiProp("intro", "setup"),
			"Published_At": dateProp("2024-04-30", ""),
			"Cover":        {Type: TypeFiles, Files: []domain.FileRef{{Name: "c", URL: "https://cdn.example.com/c.png"}}},
		},
	}

	entry := ProjectContent(row)

	assert.Equal(t, "3f1a2b3c4d5e6f708192a3b4c5d6e7f8", entry.ID)
	assert.Equal(t, "Getting Started", entry.Title)
	assert.Equal(t, "How to begin", entry.Summary)
	assert.Equal(t, "getting-started", entry.Slug)
	assert.Equal(t, "Published", entry.Status)
	assert.Equal(t, "Guides", entry.Category)
	assert.Equal(t, []string{"intro", "setup"}, entry.Tags)
	assert.Equal(t, "https://cdn.example.com/c.png", entry.Cover)
	require.NotNil(t, entry.PublishedAt)
	assert.Equal(t, 30, entry.PublishedAt.Day())
	assert.Equal(t, edited, entry.UpdatedAt)
}

func TestProjectContent_MistypedAndMissing(t *testing.T) {
	row := domain.Row{
		ID: rowID,
		Properties: map[string]domain.PropertyValue{
			"Title":     titleProp("Only a title"),
			"Status":    numberProp(3),
			"Tags":      checkboxProp(true),
			"Published": textProp("not a date property"),
		},
	}

	entry := ProjectContent(row)

	assert.Equal(t, "Only a title", entry.Title)
	assert.Empty(t, entry.Status)
	assert.Empty(t, entry.Tags)
	assert.Nil(t, entry.PublishedAt)
	assert.Empty(t, entry.Summary)
}

func TestProjectContent_RowCoverWins(t *testing.T) {
	row := domain.Row{
		ID:    rowID,
		Cover: "https://cdn.example.com/row.png",
		Properties: map[string]domain.PropertyValue{
			"Image": urlProp("https://cdn.example.com/prop.png"),
		},
	}
	assert.Equal(t, "https://cdn.example.com/row.png", ProjectContent(row).Cover)
}

func TestProjectEvent(t *testing.T) {
	row := domain.Row{
		ID: rowID,
		Properties: map[string]domain.PropertyValue{
			"Event":    titleProp("Summer Meetup"),
			"When":     dateProp("2024-07-01T18:00:00.000Z", "2024-07-01T21:00:00.000Z"),
			"Venue":    textProp("Main hall"),
			"Website":  urlProp("https://example.com/meetup"),
			"Seats":    textProp("about 1,200 seats"),
			"Category": selectProp("Community"),
		},
	}

	event := ProjectEvent(row)

	assert.Equal(t, "Summer Meetup", event.Title)
	assert.Equal(t, "Main hall", event.Location)
	assert.Equal(t, "https://example.com/meetup", event.Link)
	assert.Equal(t, "Community", event.Category)
	require.NotNil(t, event.StartsAt)
	assert.Equal(t, 18, event.StartsAt.Hour())
	require.NotNil(t, event.EndsAt)
	assert.Equal(t, 21, event.EndsAt.Hour())
	require.NotNil(t, event.Capacity)
	assert.Equal(t, 1200, *event.Capacity)
}

func TestProjectEvent_SeparateEndDate(t *testing.T) {
	row := domain.Row{
		ID: rowID,
		Properties: map[string]domain.PropertyValue{
			"Date":     dateProp("2024-07-01", ""),
			"End Date": dateProp("2024-07-03", ""),
			"Capacity": numberProp(40),
		},
	}

	event := ProjectEvent(row)

	require.NotNil(t, event.EndsAt)
	assert.Equal(t, 3, event.EndsAt.Day())
	assert.Equal(t, 40, *event.Capacity)
	assert.Empty(t, event.Title)
}

func TestProjectFormField(t *testing.T) {
	row := domain.Row{
		ID: rowID,
		Properties: map[string]domain.PropertyValue{
			"Label":       titleProp("Preferred Contact"),
			"Field Type":  selectProp("Dropdown"),
			"Required":    checkboxProp(true),
			"Options":     textProp("Email, Phone; Post"),
			"Order":       numberProp(2),
			"Placeholder": textProp("Pick one"),
			"Help":        textProp("We only use this once"),
		},
	}

	field := ProjectFormField(row)

	assert.Equal(t, "Preferred Contact", field.Label)
	assert.Equal(t, "preferred_contact", field.Name)
	assert.Equal(t, domain.FieldSelect, field.Type)
	assert.True(t, field.Required)
	assert.Equal(t, []string{"Email", "Phone", "Post"}, field.Options)
	assert.Equal(t, 2, field.Order)
	assert.Equal(t, "Pick one", field.Placeholder)
	assert.Equal(t, "We only use this once", field.HelpText)
}

func TestProjectFormField_Defaults(t *testing.T) {
	field := ProjectFormField(domain.Row{
		ID: rowID,
		Properties: map[string]domain.PropertyValue{
			"Question": titleProp("Your email"),
			"Name":     textProp("email"),
			"Type":     selectProp("hologram"),
			"Required": textProp("yes"),
		},
	})

	assert.Equal(t, "email", field.Name)
	assert.Equal(t, domain.FieldText, field.Type)
	assert.False(t, field.Required)
	assert.Nil(t, field.Options)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world-2024", Slugify("  Hello, World! 2024 "))
	assert.Equal(t, "", Slugify("!!!"))
}
