// ABOUTME: Wire shapes of the external document API and their conversion to domain types
// ABOUTME: Node payloads are decoded by type tag into the closed block union

package blockstore

import (
	"encoding/json"
	"strings"
	"time"

	"blockpress-api/core/domain"
)

type wireRichText struct {
	Type        string          `json:"type"`
	PlainText   string          `json:"plain_text"`
	Href        *string         `json:"href"`
	Annotations wireAnnotations `json:"annotations"`
	Text        *struct {
		Content string `json:"content"`
		Link    *struct {
			URL string `json:"url"`
		} `json:"link"`
	} `json:"text,omitempty"`
}

type wireAnnotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

type wireFile struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	External *struct {
		URL string `json:"url"`
	} `json:"external,omitempty"`
	File *struct {
		URL string `json:"url"`
	} `json:"file,omitempty"`
}

func (f *wireFile) url() string {
	if f == nil {
		return ""
	}
	if f.External != nil && f.External.URL != "" {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

type wireIcon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
	wireFile
}

func (i *wireIcon) value() string {
	if i == nil {
		return ""
	}
	if i.Type == "emoji" {
		return i.Emoji
	}
	return i.wireFile.url()
}

type wireBlock struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children"`
}

// textPayload covers every type whose payload is styled text plus extras
type textPayload struct {
	RichText     []wireRichText `json:"rich_text"`
	Color        string         `json:"color"`
	Icon         *wireIcon      `json:"icon"`
	Checked      bool           `json:"checked"`
	IsToggleable bool           `json:"is_toggleable"`
	Caption      []wireRichText `json:"caption"`
	Language     string         `json:"language"`
}

type imagePayload struct {
	wireFile
	Caption []wireRichText `json:"caption"`
}

type bookmarkPayload struct {
	URL     string         `json:"url"`
	Caption []wireRichText `json:"caption"`
}

type titlePayload struct {
	Title string `json:"title"`
}

type linkPayload struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id"`
	DatabaseID string `json:"database_id"`
}

type syncedPayload struct {
	SyncedFrom *struct {
		BlockID string `json:"block_id"`
	} `json:"synced_from"`
}

type wireList struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
}

type wireProperty struct {
	ID          string                `json:"id"`
	Type        string                `json:"type"`
	Title       []wireRichText        `json:"title"`
	RichText    []wireRichText        `json:"rich_text"`
	Select      *domain.SelectOption  `json:"select"`
	Status      *domain.SelectOption  `json:"status"`
	MultiSelect []domain.SelectOption `json:"multi_select"`
	Date        *domain.DateValue     `json:"date"`
	URL         *string               `json:"url"`
	Email       *string               `json:"email"`
	PhoneNumber *string               `json:"phone_number"`
	Checkbox    *bool                 `json:"checkbox"`
	Number      *float64              `json:"number"`
	Files       []wireFile            `json:"files"`
}

type wirePage struct {
	ID             string                  `json:"id"`
	URL            string                  `json:"url"`
	Cover          *wireFile               `json:"cover"`
	Icon           *wireIcon               `json:"icon"`
	CreatedTime    time.Time               `json:"created_time"`
	LastEditedTime time.Time               `json:"last_edited_time"`
	Properties     map[string]wireProperty `json:"properties"`
}

type wireDatabase struct {
	ID         string                     `json:"id"`
	Title      []wireRichText             `json:"title"`
	Cover      *wireFile                  `json:"cover"`
	Properties map[string]json.RawMessage `json:"properties"`
}

type wireError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeBlock converts one raw node. Unknown types, and known types whose
// payload does not decode, become Unsupported with the raw payload kept.
func decodeBlock(raw json.RawMessage) (domain.Block, error) {
	var head wireBlock
	if err := json.Unmarshal(raw, &head); err != nil {
		return domain.Block{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Block{}, err
	}
	payload := fields[head.Type]

	content, ok := decodeContent(domain.BlockType(head.Type), payload)
	if !ok {
		content = domain.Unsupported{RawType: head.Type, Raw: payload}
	}

	b := domain.NewBlock(head.ID, content)
	b.HasChildren = head.HasChildren
	return b, nil
}

func decodeContent(t domain.BlockType, payload json.RawMessage) (domain.BlockContent, bool) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	switch t {
	case domain.BlockParagraph, domain.BlockHeading1, domain.BlockHeading2, domain.BlockHeading3,
		domain.BlockBulletedListItem, domain.BlockNumberedListItem, domain.BlockToDo, domain.BlockQuote,
		domain.BlockCode, domain.BlockCallout, domain.BlockToggle:
		var p textPayload
		if json.Unmarshal(payload, &p) != nil {
			return nil, false
		}
		return textContent(t, p), true

	case domain.BlockImage:
		var p imagePayload
		if json.Unmarshal(payload, &p) != nil {
			return nil, false
		}
		return domain.Image{URL: p.wireFile.url(), Caption: spans(p.Caption), Hosted: p.Type == "file"}, true

	case domain.BlockBookmark:
		var p bookmarkPayload
		if json.Unmarshal(payload, &p) != nil {
			return nil, false
		}
		return domain.Bookmark{URL: p.URL, Caption: spans(p.Caption)}, true

	case domain.BlockChildPage, domain.BlockChildDatabase:
		var p titlePayload
		if json.Unmarshal(payload, &p) != nil {
			return nil, false
		}
		if t == domain.BlockChildPage {
			return domain.ChildPage{Title: p.Title}, true
		}
		return domain.ChildDatabase{Title: p.Title}, true

	case domain.BlockLinkToPage:
		var p linkPayload
		if json.Unmarshal(payload, &p) != nil {
			return nil, false
		}
		if p.Type == "database_id" {
			return domain.LinkToPage{TargetID: p.DatabaseID, TargetKind: "database"}, true
		}
		return domain.LinkToPage{TargetID: p.PageID, TargetKind: "page"}, true

	case domain.BlockSyncedBlock:
		var p syncedPayload
		if json.Unmarshal(payload, &p) != nil {
			return nil, false
		}
		if p.SyncedFrom != nil {
			return domain.SyncedBlock{SourceID: p.SyncedFrom.BlockID}, true
		}
		return domain.SyncedBlock{}, true

	case domain.BlockDivider:
		return domain.Divider{}, true
	case domain.BlockColumnList:
		return domain.ColumnList{}, true
	case domain.BlockColumn:
		return domain.Column{}, true
	}
	return nil, false
}

func textContent(t domain.BlockType, p textPayload) domain.BlockContent {
	text := spans(p.RichText)
	color := domain.NormalizeColor(p.Color)

	switch t {
	case domain.BlockHeading1:
		return domain.Heading{Level: 1, RichText: text, Color: color, Toggleable: p.IsToggleable}
	case domain.BlockHeading2:
		return domain.Heading{Level: 2, RichText: text, Color: color, Toggleable: p.IsToggleable}
	case domain.BlockHeading3:
		return domain.Heading{Level: 3, RichText: text, Color: color, Toggleable: p.IsToggleable}
	case domain.BlockBulletedListItem:
		return domain.ListItem{RichText: text, Color: color}
	case domain.BlockNumberedListItem:
		return domain.ListItem{Numbered: true, RichText: text, Color: color}
	case domain.BlockToDo:
		return domain.ToDo{RichText: text, Checked: p.Checked}
	case domain.BlockQuote:
		return domain.Quote{RichText: text, Color: color}
	case domain.BlockCode:
		return domain.Code{RichText: text, Caption: spans(p.Caption), Language: p.Language}
	case domain.BlockCallout:
		return domain.Callout{RichText: text, Icon: p.Icon.value(), Color: color}
	case domain.BlockToggle:
		return domain.Toggle{RichText: text, Color: color}
	default:
		return domain.Paragraph{RichText: text, Color: color}
	}
}

// spans converts rich text items. Mentions and equations keep their plain
// text; links come from the item's href or the text link.
func spans(items []wireRichText) []domain.TextSpan {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.TextSpan, 0, len(items))
	for _, item := range items {
		span := domain.TextSpan{
			Text: item.PlainText,
			Annotations: domain.Annotations{
				Bold:          item.Annotations.Bold,
				Italic:        item.Annotations.Italic,
				Underline:     item.Annotations.Underline,
				Strikethrough: item.Annotations.Strikethrough,
				Code:          item.Annotations.Code,
				Color:         domain.NormalizeColor(item.Annotations.Color),
			},
		}
		if item.Text != nil {
			if span.Text == "" {
				span.Text = item.Text.Content
			}
			if item.Text.Link != nil && item.Text.Link.URL != "" {
				link := item.Text.Link.URL
				span.Href = &link
			}
		}
		if span.Href == nil && item.Href != nil && *item.Href != "" {
			href := *item.Href
			span.Href = &href
		}
		out = append(out, span)
	}
	return out
}

func plain(items []wireRichText) string {
	return strings.TrimSpace(domain.PlainText(spans(items)))
}

func convertProperty(p wireProperty) domain.PropertyValue {
	v := domain.PropertyValue{
		Type:        p.Type,
		Title:       spans(p.Title),
		RichText:    spans(p.RichText),
		Select:      p.Select,
		Status:      p.Status,
		MultiSelect: p.MultiSelect,
		Date:        p.Date,
		URL:         p.URL,
		Email:       p.Email,
		Phone:       p.PhoneNumber,
		Checkbox:    p.Checkbox,
		Number:      p.Number,
	}
	for i := range p.Files {
		if u := p.Files[i].url(); u != "" {
			v.Files = append(v.Files, domain.FileRef{Name: p.Files[i].Name, URL: u})
		}
	}
	return v
}

func convertProperties(props map[string]wireProperty) map[string]domain.PropertyValue {
	out := make(map[string]domain.PropertyValue, len(props))
	for name, p := range props {
		out[name] = convertProperty(p)
	}
	return out
}

func convertPage(p wirePage) domain.PageMeta {
	meta := domain.PageMeta{
		ID:             p.ID,
		Cover:          p.Cover.url(),
		Icon:           p.Icon.value(),
		URL:            p.URL,
		LastEditedTime: p.LastEditedTime,
		Properties:     convertProperties(p.Properties),
	}
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			meta.Title = plain(prop.Title)
			break
		}
	}
	return meta
}

func convertRow(p wirePage) domain.Row {
	return domain.Row{
		ID:             p.ID,
		URL:            p.URL,
		Cover:          p.Cover.url(),
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
		Properties:     convertProperties(p.Properties),
	}
}

// convertDatabase reads the schema. Choice options live under a key named
// after the property type.
func convertDatabase(d wireDatabase) domain.CollectionMeta {
	meta := domain.CollectionMeta{
		ID:         d.ID,
		Title:      plain(d.Title),
		Cover:      d.Cover.url(),
		Properties: make(map[string]domain.PropertySchema, len(d.Properties)),
	}
	for name, raw := range d.Properties {
		var head struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if json.Unmarshal(raw, &head) != nil {
			continue
		}
		schema := domain.PropertySchema{ID: head.ID, Name: head.Name, Type: head.Type}
		if schema.Name == "" {
			schema.Name = name
		}

		var fields map[string]json.RawMessage
		if json.Unmarshal(raw, &fields) == nil {
			var opts struct {
				Options []domain.SelectOption `json:"options"`
			}
			if json.Unmarshal(fields[head.Type], &opts) == nil {
				schema.Options = opts.Options
			}
		}
		meta.Properties[name] = schema
	}
	return meta
}
