package blocks

import "github.com/thelogs/shelflife/internal/model"

// Reconcile re-derives the block list from the live document after an edit.
// It never fails: image placeholders resolve to the original image block by
// the ID they carry, paragraph nodes pair positionally with the next
// unconsumed paragraph from the previous list, and anything that cannot be
// matched gets a freshly minted identity. Surplus previous paragraphs are
// dropped, never reused.
//
// The output length always equals the number of document nodes, no block
// appears twice, and a block never changes variant.
func Reconcile(prev []model.Block, doc Document) []model.Block {
	images := make(map[string]model.Block, len(prev))
	var paragraphs []model.Block
	for _, b := range prev {
		switch b.Type {
		case model.BlockImage:
			images[b.ID] = b
		case model.BlockParagraph:
			paragraphs = append(paragraphs, b)
		}
	}

	out := make([]model.Block, 0, len(doc.Nodes))
	nextPara := 0
	for _, n := range doc.Nodes {
		switch n.Kind {
		case model.BlockImage:
			if b, ok := images[n.BlockID]; ok {
				out = append(out, b)
				delete(images, n.BlockID) // guard against duplicated placeholders
				continue
			}
			// Placeholder with no backing block: accepted degradation,
			// mint a new identity rather than fail.
			out = append(out, model.NewImage(""))
		default:
			frag := n.Frag.Clone()
			if frag == nil {
				frag = &model.Fragment{}
			}
			if nextPara < len(paragraphs) {
				b := paragraphs[nextPara]
				nextPara++
				b.Rich = frag
				out = append(out, b)
				continue
			}
			// Newly typed paragraph: no previous identity remains.
			out = append(out, model.NewParagraph(frag))
		}
	}
	return out
}

// Insert returns the list with a new block of the given type placed
// immediately after afterIndex. A negative afterIndex prepends; an index past
// the end appends. The new paragraph starts with an empty fragment, the new
// image with an empty URL awaiting its source. The caller is expected to move
// editing focus into the new block.
func Insert(bs []model.Block, t model.BlockType, afterIndex int) []model.Block {
	var nb model.Block
	if t == model.BlockImage {
		nb = model.NewImage("")
	} else {
		nb = model.NewParagraph(nil)
	}

	pos := afterIndex + 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(bs) {
		pos = len(bs)
	}
	out := make([]model.Block, 0, len(bs)+1)
	out = append(out, bs[:pos]...)
	out = append(out, nb)
	out = append(out, bs[pos:]...)
	return out
}

// Remove deletes the block with the given ID. The list is never left empty:
// removing the last block yields a single fresh empty paragraph.
func Remove(bs []model.Block, id string) []model.Block {
	out := make([]model.Block, 0, len(bs))
	for _, b := range bs {
		if b.ID != id {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		out = append(out, model.NewParagraph(nil))
	}
	return out
}

// ReorderImages splices the image blocks into the requested order while every
// paragraph keeps its relative position. Images missing from newOrder retain
// their original relative order after the requested ones; entries in newOrder
// that are not image blocks of the current list are ignored.
func ReorderImages(bs []model.Block, newOrder []model.Block) []model.Block {
	current := make(map[string]model.Block, len(bs))
	for _, b := range bs {
		if b.Type == model.BlockImage {
			current[b.ID] = b
		}
	}

	ordered := make([]model.Block, 0, len(current))
	for _, b := range newOrder {
		if got, ok := current[b.ID]; ok {
			ordered = append(ordered, got)
			delete(current, b.ID)
		}
	}
	for _, b := range bs {
		if b.Type != model.BlockImage {
			continue
		}
		if _, ok := current[b.ID]; ok {
			ordered = append(ordered, b)
		}
	}

	out := make([]model.Block, 0, len(bs))
	next := 0
	for _, b := range bs {
		if b.Type == model.BlockImage {
			out = append(out, ordered[next])
			next++
			continue
		}
		out = append(out, b)
	}
	return out
}
