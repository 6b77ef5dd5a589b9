// ABOUTME: Block domain model represents one node of an authored document tree
// ABOUTME: Payloads form a closed union with an explicit fallback for unknown node types

package domain

import "encoding/json"

// BlockType is the type tag the external store assigns to a node
type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockQuote            BlockType = "quote"
	BlockCode             BlockType = "code"
	BlockImage            BlockType = "image"
	BlockDivider          BlockType = "divider"
	BlockCallout          BlockType = "callout"
	BlockToggle           BlockType = "toggle"
	BlockChildPage        BlockType = "child_page"
	BlockChildDatabase    BlockType = "child_database"
	BlockLinkToPage       BlockType = "link_to_page"
	BlockColumnList       BlockType = "column_list"
	BlockColumn           BlockType = "column"
	BlockSyncedBlock      BlockType = "synced_block"
	BlockBookmark         BlockType = "bookmark"
	BlockUnsupported      BlockType = "unsupported"
)

// Block is a typed node of a document tree.
//
// Children is populated only after a successful fetch. A block with
// HasChildren set and no Children was deliberately not descended into
// (child pages and databases are separate documents).
type Block struct {
	// ID is the store's identifier for the node
	ID string `json:"id"`

	// Type is the node's type tag
	Type BlockType `json:"type"`

	// HasChildren reports whether the store has nested nodes under this one
	HasChildren bool `json:"has_children"`

	// Content holds the type-specific payload
	Content BlockContent `json:"content,omitempty"`

	// Children are the nested nodes in authoring order
	Children []Block `json:"children,omitempty"`
}

// BlockContent is implemented only by the payload types of this package
type BlockContent interface {
	blockType() BlockType
}

// Paragraph is a plain text block
type Paragraph struct {
	RichText []TextSpan `json:"rich_text"`
	Color    Color      `json:"color,omitempty"`
}

// Heading is a level 1-3 heading
type Heading struct {
	Level      int        `json:"level"`
	RichText   []TextSpan `json:"rich_text"`
	Color      Color      `json:"color,omitempty"`
	Toggleable bool       `json:"is_toggleable,omitempty"`
}

// ListItem is a bulleted or numbered list entry
type ListItem struct {
	Numbered bool       `json:"numbered"`
	RichText []TextSpan `json:"rich_text"`
	Color    Color      `json:"color,omitempty"`
}

// ToDo is a checkbox list entry
type ToDo struct {
	RichText []TextSpan `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

// Quote is a quotation block
type Quote struct {
	RichText []TextSpan `json:"rich_text"`
	Color    Color      `json:"color,omitempty"`
}

// Code is a source code block
type Code struct {
	RichText []TextSpan `json:"rich_text"`
	Caption  []TextSpan `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

// Image is an embedded picture, either hosted by the store or external
type Image struct {
	URL     string     `json:"url"`
	Caption []TextSpan `json:"caption,omitempty"`
	Hosted  bool       `json:"hosted,omitempty"`
}

// Divider is a horizontal rule
type Divider struct{}

// Callout is an annotated panel with an optional icon
type Callout struct {
	RichText []TextSpan `json:"rich_text"`
	Icon     string     `json:"icon,omitempty"`
	Color    Color      `json:"color,omitempty"`
}

// Toggle is a collapsible block
type Toggle struct {
	RichText []TextSpan `json:"rich_text"`
	Color    Color      `json:"color,omitempty"`
}

// ChildPage is a nested page reference
type ChildPage struct {
	Title string `json:"title"`
}

// ChildDatabase is a nested collection reference
type ChildDatabase struct {
	Title string `json:"title"`
}

// LinkToPage is a cross-document (or cross-database) link card
type LinkToPage struct {
	TargetID string `json:"target_id"`
	// TargetKind is "page" or "database"
	TargetKind string `json:"target_kind"`
}

// ColumnList groups columns side by side
type ColumnList struct{}

// Column is one column of a column list
type Column struct{}

// SyncedBlock mirrors content from another block. SourceID is empty for the original.
type SyncedBlock struct {
	SourceID string `json:"source_id,omitempty"`
}

// Bookmark is a link preview to an external page
type Bookmark struct {
	URL     string     `json:"url"`
	Caption []TextSpan `json:"caption,omitempty"`
}

// Unsupported carries a node type this package does not model
type Unsupported struct {
	RawType string          `json:"raw_type"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

func (Paragraph) blockType() BlockType     { return BlockParagraph }
func (ToDo) blockType() BlockType          { return BlockToDo }
func (Quote) blockType() BlockType         { return BlockQuote }
func (Code) blockType() BlockType          { return BlockCode }
func (Image) blockType() BlockType         { return BlockImage }
func (Divider) blockType() BlockType       { return BlockDivider }
func (Callout) blockType() BlockType       { return BlockCallout }
func (Toggle) blockType() BlockType        { return BlockToggle }
func (ChildPage) blockType() BlockType     { return BlockChildPage }
func (ChildDatabase) blockType() BlockType { return BlockChildDatabase }
func (LinkToPage) blockType() BlockType    { return BlockLinkToPage }
func (ColumnList) blockType() BlockType    { return BlockColumnList }
func (Column) blockType() BlockType        { return BlockColumn }
func (SyncedBlock) blockType() BlockType   { return BlockSyncedBlock }
func (Bookmark) blockType() BlockType      { return BlockBookmark }
func (Unsupported) blockType() BlockType   { return BlockUnsupported }

func (h Heading) blockType() BlockType {
	switch h.Level {
	case 1:
		return BlockHeading1
	case 2:
		return BlockHeading2
	default:
		return BlockHeading3
	}
}

func (l ListItem) blockType() BlockType {
	if l.Numbered {
		return BlockNumberedListItem
	}
	return BlockBulletedListItem
}

// NewBlock builds a block whose Type is derived from its payload
func NewBlock(id string, content BlockContent, children ...Block) Block {
	b := Block{
		ID:          id,
		Type:        BlockUnsupported,
		Content:     content,
		HasChildren: len(children) > 0,
	}
	if content != nil {
		b.Type = content.blockType()
	}
	if len(children) > 0 {
		b.Children = children
	}
	return b
}

// RichText returns the block's own inline text, or nil for types without text
func (b Block) RichText() []TextSpan {
	switch c := b.Content.(type) {
	case Paragraph:
		return c.RichText
	case Heading:
		return c.RichText
	case ListItem:
		return c.RichText
	case ToDo:
		return c.RichText
	case Quote:
		return c.RichText
	case Code:
		return c.RichText
	case Callout:
		return c.RichText
	case Toggle:
		return c.RichText
	case Image:
		return c.Caption
	case Bookmark:
		return c.Caption
	case ChildPage:
		return []TextSpan{{Text: c.Title}}
	case ChildDatabase:
		return []TextSpan{{Text: c.Title}}
	}
	return nil
}

// WithoutChildren returns a copy of the block with Children cleared
func (b Block) WithoutChildren() Block {
	b.Children = nil
	return b
}

// Clone returns a deep copy of the block's tree structure. Payloads are
// treated as immutable values and shared.
func (b Block) Clone() Block {
	if len(b.Children) == 0 {
		return b
	}
	children := make([]Block, len(b.Children))
	for i, child := range b.Children {
		children[i] = child.Clone()
	}
	b.Children = children
	return b
}

// Walk visits every descendant of b depth-first in authoring order,
// excluding b itself
func (b Block) Walk(visit func(Block)) {
	for _, child := range b.Children {
		visit(child)
		child.Walk(visit)
	}
}
