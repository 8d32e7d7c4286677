// Package blocks implements the document model and the reconciler that maps
// between the rich-text editing surface and the stable, identified block list
// backing an entry.
package blocks

import "github.com/thelogs/shelflife/internal/model"

// Node is one top-level node of the editing surface: either an editable
// paragraph or an atomic image placeholder. Placeholders carry the owning
// block's ID so identity survives edits that do not touch them.
type Node struct {
	Kind    model.BlockType
	BlockID string          // image placeholder only
	Frag    *model.Fragment // paragraph only
}

// Document is the editable surface presented to the user: an ordered sequence
// of top-level nodes derived from a block list.
type Document struct {
	Nodes []Node
}

// Load builds an editable document from a block list, preserving order
// exactly. Paragraph blocks map to paragraph nodes; image blocks map to
// placeholders keyed by block ID. A paragraph with no structured content
// (possible for values built outside the JSON decoder) loads as empty.
func Load(bs []model.Block) Document {
	doc := Document{Nodes: make([]Node, 0, len(bs))}
	for _, b := range bs {
		switch b.Type {
		case model.BlockImage:
			doc.Nodes = append(doc.Nodes, Node{Kind: model.BlockImage, BlockID: b.ID})
		default:
			frag := b.Rich
			if frag == nil {
				frag = &model.Fragment{}
			}
			doc.Nodes = append(doc.Nodes, Node{Kind: model.BlockParagraph, Frag: frag.Clone()})
		}
	}
	return doc
}
