package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// BlockType tags the two block variants.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
)

// MarkType is an inline formatting mark on a text run.
type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkUnderline MarkType = "underline"
	MarkLink      MarkType = "link"
)

// Mark is a single formatting mark. Href is set for link marks only.
type Mark struct {
	Type MarkType `json:"type"`
	Href string   `json:"href,omitempty"`
}

// Inline is a run of text carrying zero or more marks.
type Inline struct {
	Text  string `json:"text"`
	Marks []Mark `json:"marks,omitempty"`
}

// Fragment is the structured rich-text content of one paragraph block.
type Fragment struct {
	Content []Inline `json:"content"`
}

// PlainFragment wraps plain text into a minimal valid fragment. Empty text
// yields an empty fragment, not a fragment with an empty run.
func PlainFragment(text string) *Fragment {
	if text == "" {
		return &Fragment{}
	}
	return &Fragment{Content: []Inline{{Text: text}}}
}

// Text returns the concatenated visible text of the fragment.
func (f *Fragment) Text() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	for _, run := range f.Content {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}
	out := &Fragment{}
	if f.Content != nil {
		out.Content = make([]Inline, len(f.Content))
		for i, run := range f.Content {
			out.Content[i] = Inline{Text: run.Text, Marks: append([]Mark(nil), run.Marks...)}
		}
	}
	return out
}

// Block is one identified unit of entry content: either a rich-text paragraph
// or an image. ID is the only stable handle across edits and reorders.
//
// Content is a tagged union on Type: Rich for paragraphs, ImageURL for images.
// Legacy records stored paragraph content as a plain string; UnmarshalJSON
// migrates that shape into a structured fragment once at load time.
type Block struct {
	ID       string
	Type     BlockType
	Rich     *Fragment // paragraph content
	ImageURL string    // image source URL
}

// NewParagraph mints a paragraph block with a fresh identity.
func NewParagraph(frag *Fragment) Block {
	if frag == nil {
		frag = &Fragment{}
	}
	return Block{ID: NewBlockID(), Type: BlockParagraph, Rich: frag}
}

// NewImage mints an image block with a fresh identity.
func NewImage(url string) Block {
	return Block{ID: NewBlockID(), Type: BlockImage, ImageURL: url}
}

// NewBlockID returns a new stable block identifier.
func NewBlockID() string {
	return uuid.Must(uuid.NewV4()).String()
}

type blockWire struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON writes the wire shape {id, type, content} where content is the
// image URL string or the paragraph fragment object.
func (b Block) MarshalJSON() ([]byte, error) {
	w := blockWire{ID: b.ID, Type: b.Type}
	var err error
	switch b.Type {
	case BlockImage:
		w.Content, err = json.Marshal(b.ImageURL)
	default:
		frag := b.Rich
		if frag == nil {
			frag = &Fragment{}
		}
		w.Content, err = json.Marshal(frag)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads both the current and the legacy wire shape. A plain
// string where a paragraph fragment is expected is a migration case, not an
// error: it is wrapped into a single-run fragment.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.ID = w.ID
	b.Type = w.Type
	b.Rich = nil
	b.ImageURL = ""

	if w.Type == BlockImage {
		if len(w.Content) == 0 {
			return nil
		}
		if err := json.Unmarshal(w.Content, &b.ImageURL); err != nil {
			return fmt.Errorf("image block %s: %w", w.ID, err)
		}
		return nil
	}

	b.Type = BlockParagraph
	if len(w.Content) == 0 || string(w.Content) == "null" {
		b.Rich = &Fragment{}
		return nil
	}
	var legacy string
	if err := json.Unmarshal(w.Content, &legacy); err == nil {
		b.Rich = PlainFragment(legacy)
		return nil
	}
	var frag Fragment
	if err := json.Unmarshal(w.Content, &frag); err != nil {
		return fmt.Errorf("paragraph block %s: %w", w.ID, err)
	}
	b.Rich = &frag
	return nil
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	out.Rich = b.Rich.Clone()
	return out
}
