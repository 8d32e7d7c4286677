package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thelogs/shelflife/internal/model"
)

func TestFlattenHTML_Marks(t *testing.T) {
	bs := []model.Block{
		{ID: "p1", Type: model.BlockParagraph, Rich: &model.Fragment{Content: []model.Inline{
			{Text: "bold", Marks: []model.Mark{{Type: model.MarkBold}}},
			{Text: " and "},
			{Text: "site", Marks: []model.Mark{{Type: model.MarkLink, Href: "https://example.com"}}},
		}}},
	}

	got := FlattenHTML(bs)
	require.Equal(t, `<p><strong>bold</strong> and <a href="https://example.com">site</a></p>`, got)
}

func TestFlattenHTML_SkipsImagesAndEscapes(t *testing.T) {
	bs := []model.Block{
		img("i1", "https://x/a.png"),
		para("p1", "a < b"),
	}

	got := FlattenHTML(bs)
	require.Equal(t, "<p>a &lt; b</p>", got)
}

func TestFlattenHTML_NestedMarks(t *testing.T) {
	bs := []model.Block{
		{ID: "p1", Type: model.BlockParagraph, Rich: &model.Fragment{Content: []model.Inline{
			{Text: "both", Marks: []model.Mark{{Type: model.MarkBold}, {Type: model.MarkItalic}}},
		}}},
	}

	require.Equal(t, "<p><strong><em>both</em></strong></p>", FlattenHTML(bs))
}

func TestFlattenText(t *testing.T) {
	bs := []model.Block{para("p1", "one"), img("i1", "u"), para("p2", "two")}
	require.Equal(t, "one\ntwo", FlattenText(bs))
}

func TestContentEmpty(t *testing.T) {
	require.True(t, ContentEmpty(nil))
	require.True(t, ContentEmpty([]model.Block{para("p1", ""), img("i1", "")}))
	require.False(t, ContentEmpty([]model.Block{para("p1", "x")}))
	require.False(t, ContentEmpty([]model.Block{img("i1", "https://x/a.png")}))
}
