package blocktree

import "blockpress-api/core/domain"

// containers keep their children nested through flattening
var containers = map[domain.BlockType]bool{
	domain.BlockCallout:       true,
	domain.BlockToggle:        true,
	domain.BlockQuote:         true,
	domain.BlockColumnList:    true,
	domain.BlockColumn:        true,
	domain.BlockSyncedBlock:   true,
	domain.BlockLinkToPage:    true,
	domain.BlockChildDatabase: true,
}

// IsContainer reports whether blocks of type t keep their subtree when flattened
func IsContainer(t domain.BlockType) bool {
	return containers[t]
}

// Flatten linearizes a forest. Containers are emitted with their children
// untouched; every other block is emitted without children, immediately
// followed by its own flattened children.
func Flatten(forest []domain.Block) []domain.Block {
	out := make([]domain.Block, 0, len(forest))
	return appendFlat(out, forest)
}

func appendFlat(out, blocks []domain.Block) []domain.Block {
	for _, b := range blocks {
		if IsContainer(b.Type) {
			out = append(out, b.Clone())
			continue
		}
		out = append(out, b.WithoutChildren())
		out = appendFlat(out, b.Children)
	}
	return out
}
