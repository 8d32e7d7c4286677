package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlock_UnmarshalLegacyString(t *testing.T) {
	raw := `{"id":"b1","type":"paragraph","content":"hello world"}`

	var b Block
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	require.Equal(t, "b1", b.ID)
	require.Equal(t, BlockParagraph, b.Type)
	require.Equal(t, "hello world", b.Rich.Text())
}

func TestBlock_UnmarshalStructured(t *testing.T) {
	raw := `{"id":"b2","type":"paragraph","content":{"content":[{"text":"bold","marks":[{"type":"bold"}]},{"text":" plain"}]}}`

	var b Block
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	require.Equal(t, "bold plain", b.Rich.Text())
	require.Equal(t, MarkBold, b.Rich.Content[0].Marks[0].Type)
}

func TestBlock_UnmarshalImage(t *testing.T) {
	raw := `{"id":"b3","type":"image","content":"https://x/img.png"}`

	var b Block
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	require.Equal(t, BlockImage, b.Type)
	require.Equal(t, "https://x/img.png", b.ImageURL)
	require.Nil(t, b.Rich)
}

func TestBlock_MarshalRoundTrip(t *testing.T) {
	in := []Block{
		NewParagraph(&Fragment{Content: []Inline{{Text: "linked", Marks: []Mark{{Type: MarkLink, Href: "https://example.com"}}}}}),
		NewImage("https://x/a.png"),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Block
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	require.Equal(t, in[0].ID, out[0].ID)
	require.Equal(t, "linked", out[0].Rich.Text())
	require.Equal(t, "https://example.com", out[0].Rich.Content[0].Marks[0].Href)
	require.Equal(t, in[1].ID, out[1].ID)
	require.Equal(t, "https://x/a.png", out[1].ImageURL)
}

func TestBlock_UnmarshalNullContent(t *testing.T) {
	raw := `{"id":"b4","type":"paragraph","content":null}`

	var b Block
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	require.NotNil(t, b.Rich)
	require.Equal(t, "", b.Rich.Text())
}

func TestFragment_CloneIndependent(t *testing.T) {
	f := &Fragment{Content: []Inline{{Text: "a"}}}
	c := f.Clone()
	c.Content[0].Text = "b"
	require.Equal(t, "a", f.Text())
	require.Equal(t, "b", c.Text())
}

func TestPlainFragment_EmptyHasNoRuns(t *testing.T) {
	require.Empty(t, PlainFragment("").Content)
	require.Equal(t, "x", PlainFragment("x").Text())
}
