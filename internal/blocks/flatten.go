package blocks

import (
	"html"
	"strings"

	"github.com/thelogs/shelflife/internal/model"
)

// FlattenHTML renders the paragraph blocks to the denormalized HTML kept on
// Entry.Notes. Image blocks are skipped: notes is the text fallback path.
func FlattenHTML(bs []model.Block) string {
	var b strings.Builder
	for _, blk := range bs {
		if blk.Type != model.BlockParagraph {
			continue
		}
		b.WriteString("<p>")
		if blk.Rich != nil {
			for _, run := range blk.Rich.Content {
				b.WriteString(renderRun(run))
			}
		}
		b.WriteString("</p>")
	}
	return b.String()
}

// FlattenText renders the paragraph blocks to plain text, one line per block.
func FlattenText(bs []model.Block) string {
	var lines []string
	for _, blk := range bs {
		if blk.Type != model.BlockParagraph {
			continue
		}
		lines = append(lines, blk.Rich.Text())
	}
	return strings.Join(lines, "\n")
}

// ContentEmpty reports whether the block list carries no user content: no
// image URLs and no paragraph text.
func ContentEmpty(bs []model.Block) bool {
	for _, blk := range bs {
		switch blk.Type {
		case model.BlockImage:
			if blk.ImageURL != "" {
				return false
			}
		default:
			if blk.Rich.Text() != "" {
				return false
			}
		}
	}
	return true
}

func renderRun(run model.Inline) string {
	out := html.EscapeString(run.Text)
	// Marks nest innermost-first so the escaped text sits at the center.
	for i := len(run.Marks) - 1; i >= 0; i-- {
		switch m := run.Marks[i]; m.Type {
		case model.MarkBold:
			out = "<strong>" + out + "</strong>"
		case model.MarkItalic:
			out = "<em>" + out + "</em>"
		case model.MarkUnderline:
			out = "<u>" + out + "</u>"
		case model.MarkLink:
			out = `<a href="` + html.EscapeString(m.Href) + `">` + out + "</a>"
		}
	}
	return out
}
