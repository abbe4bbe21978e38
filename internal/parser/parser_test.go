package parser

import (
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/contentstate-go/internal/converter"
	"github.com/riverfjs/contentstate-go/internal/keys"
	"github.com/riverfjs/contentstate-go/internal/types"
)

func parse(t *testing.T, fragment string) (*types.Document, error) {
	t.Helper()
	return Parse(fragment, nil, converter.Options{Keys: keys.NewSequential()})
}

// rangeText 提取 UTF-16 范围覆盖的子串
func rangeText(text string, offset, length int) string {
	units := utf16.Encode([]rune(text))
	if offset < 0 || offset+length > len(units) {
		return ""
	}
	return string(utf16.Decode(units[offset : offset+length]))
}

func TestParse_Empty(t *testing.T) {
	doc, err := parse(t, "")
	require.NoError(t, err)
	require.Empty(t, doc.Blocks)
	require.Empty(t, doc.EntityMap)
	require.NotNil(t, doc.Blocks)
	require.NotNil(t, doc.EntityMap)
}

func TestParse_PlainParagraph(t *testing.T) {
	doc, err := parse(t, "<p>Hello</p>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	b := doc.Blocks[0]
	require.Equal(t, types.BlockUnstyled, b.Type)
	require.Equal(t, 0, b.Depth)
	require.Equal(t, "Hello", b.Text)
	require.Empty(t, b.InlineStyleRanges)
	require.Empty(t, b.EntityRanges)
}

func TestParse_NestedEmphasis(t *testing.T) {
	doc, err := parse(t, "<p>a<b>bold <i>both</i></b>c</p>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	b := doc.Blocks[0]
	require.Equal(t, "abold bothc", b.Text)
	require.Equal(t, []types.InlineStyleRange{
		{Offset: 1, Length: 9, Style: types.StyleBold},
		{Offset: 6, Length: 4, Style: types.StyleItalic},
	}, b.InlineStyleRanges)
}

func TestParse_TwoLevelList(t *testing.T) {
	doc, err := parse(t, "<ul><li>A<ul><li>B</li></ul></li></ul>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)

	require.Equal(t, types.BlockUnorderedListItem, doc.Blocks[0].Type)
	require.Equal(t, 0, doc.Blocks[0].Depth)
	require.Equal(t, "A", doc.Blocks[0].Text)

	require.Equal(t, types.BlockUnorderedListItem, doc.Blocks[1].Type)
	require.Equal(t, 1, doc.Blocks[1].Depth)
	require.Equal(t, "B", doc.Blocks[1].Text)
}

func TestParse_Link(t *testing.T) {
	doc, err := parse(t, `<p><a href="https://x">t</a></p>`)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	b := doc.Blocks[0]
	require.Equal(t, "t", b.Text)
	require.Len(t, b.EntityRanges, 1)
	r := b.EntityRanges[0]
	require.Equal(t, 0, r.Offset)
	require.Equal(t, 1, r.Length)

	entity := doc.EntityMap[r.Key]
	require.NotNil(t, entity)
	require.Equal(t, types.EntityLink, entity.Type)
	require.Equal(t, types.Mutable, entity.Mutability)
	require.Equal(t, "https://x", entity.Data["url"])
}

func TestParse_Image(t *testing.T) {
	doc, err := parse(t, `<img alt="A" src="https://y"/>`)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	b := doc.Blocks[0]
	require.Equal(t, types.BlockAtomic, b.Type)
	require.Equal(t, 1, len([]rune(b.Text)))
	require.Len(t, b.EntityRanges, 1)
	require.Equal(t, 0, b.EntityRanges[0].Offset)
	require.Equal(t, 1, b.EntityRanges[0].Length)

	want := &types.Entity{
		Type:       types.EntityImage,
		Mutability: types.Immutable,
		Data:       map[string]string{"altText": "A", "src": "https://y"},
	}
	if diff := cmp.Diff(want, doc.EntityMap[b.EntityRanges[0].Key]); diff != "" {
		t.Errorf("image entity mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ImageVoidWithoutSlash(t *testing.T) {
	doc, err := parse(t, `<img src="https://y"><p>after</p>`)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	require.Equal(t, types.BlockAtomic, doc.Blocks[0].Type)
	require.Equal(t, "after", doc.Blocks[1].Text)
}

func TestParse_ListItemOutsideList(t *testing.T) {
	_, err := parse(t, "<li>x</li>")

	var target *converter.MissingListContextError
	require.ErrorAs(t, err, &target)
}

func TestParse_BareText(t *testing.T) {
	_, err := parse(t, "<p>a</p>stray")

	var target *converter.BareTextError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "stray", target.Text)
}

func TestParse_CrossedInlineTags(t *testing.T) {
	_, err := parse(t, "<p><b>x<i>y</b></i></p>")

	var target *converter.StyleMismatchError
	require.ErrorAs(t, err, &target)
	require.Equal(t, types.StyleBold, target.Want)
	require.Equal(t, types.StyleItalic, target.Got)
}

func TestParse_UnclosedRangeAtBlockEnd(t *testing.T) {
	_, err := parse(t, `<p><a href="x">y</p></a>`)

	var target *converter.UnclosedRangeError
	require.ErrorAs(t, err, &target)
	require.Equal(t, 1, target.Entities)
}

func TestParse_NestedBlock(t *testing.T) {
	_, err := parse(t, "<p>a<h2>b</h2></p>")

	var target *converter.NestedBlockError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "h2", target.Tag)
}

func TestParse_SiblingsWithWhitespace(t *testing.T) {
	doc, err := parse(t, "\n  <h1>Title</h1>\n  <p>Body</p>\n")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	require.Equal(t, types.BlockHeaderOne, doc.Blocks[0].Type)
	require.Equal(t, "Title", doc.Blocks[0].Text)
	require.Equal(t, types.BlockUnstyled, doc.Blocks[1].Type)
}

func TestParse_HeadingLevels(t *testing.T) {
	doc, err := parse(t, "<h1>1</h1><h2>2</h2><h3>3</h3><h4>4</h4><h5>5</h5><h6>6</h6>")
	require.NoError(t, err)

	got := make([]types.BlockType, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		got = append(got, b.Type)
	}
	require.Equal(t, []types.BlockType{
		types.BlockHeaderOne, types.BlockHeaderTwo, types.BlockHeaderThree,
		types.BlockHeaderFour, types.BlockHeaderFive, types.BlockHeaderSix,
	}, got)
}

func TestParse_UnknownWrapperIsTransparent(t *testing.T) {
	bare, err := parse(t, `<p>x <b>y</b></p><ol><li>z</li></ol>`)
	require.NoError(t, err)

	wrapped, err := parse(t, `<div class="c"><section><p>x <span><b>y</b></span></p><ol><li>z</li></ol></section></div>`)
	require.NoError(t, err)

	if diff := cmp.Diff(bare, wrapped); diff != "" {
		t.Errorf("wrapper changed the document (-bare +wrapped):\n%s", diff)
	}
}

func TestParse_CharacterReferences(t *testing.T) {
	doc, err := parse(t, "<p>a &amp; b &lt;c&gt;</p>")
	require.NoError(t, err)
	require.Equal(t, "a & b <c>", doc.Blocks[0].Text)
}

func TestParse_SkipsCommentsAndScripts(t *testing.T) {
	doc, err := parse(t, "<!-- note --><script>var x = 1;</script><style>p{}</style><p>ok</p>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	require.Equal(t, "ok", doc.Blocks[0].Text)
}

func TestParse_SelfClosingRawTextTags(t *testing.T) {
	// The tokenizer keeps reading a raw text element until its end tag.
	doc, err := parse(t, "<script/>x<p>a</p>")
	require.NoError(t, err)
	require.Empty(t, doc.Blocks)

	doc, err = parse(t, "<template/><p>a</p>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	require.Equal(t, "a", doc.Blocks[0].Text)
}

func TestParse_SkipsTitleAndTextarea(t *testing.T) {
	doc, err := parse(t, "<title>T</title><p>a</p><textarea>x <b> y</textarea><p>b</p>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	require.Equal(t, "a", doc.Blocks[0].Text)
	require.Equal(t, "b", doc.Blocks[1].Text)
}

func TestParse_TextAfterNestedListInItem(t *testing.T) {
	_, err := parse(t, "<ul><li>A<ul><li>B</li></ul>tail</li></ul>")

	var target *converter.BareTextError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "tail", target.Text)
}

func TestParse_TextAfterListInParagraph(t *testing.T) {
	_, err := parse(t, "<p>a<ul><li>b</li></ul>c</p>")

	var target *converter.BareTextError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "c", target.Text)
}

func TestParse_BlockInNestedList(t *testing.T) {
	_, err := parse(t, "<ul><li>a<ul><p>x</p></ul></li></ul>")

	var target *converter.BlockInListError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "p", target.Tag)
	require.Equal(t, 1, target.Depth)
}

func TestParse_BlockInOutermostList(t *testing.T) {
	doc, err := parse(t, "<ul><p>x</p><li>y</li></ul>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	require.Equal(t, types.BlockUnstyled, doc.Blocks[0].Type)
	require.Equal(t, 0, doc.Blocks[0].Depth)
	require.Equal(t, types.BlockUnorderedListItem, doc.Blocks[1].Type)
}

func TestParse_OrderedList(t *testing.T) {
	doc, err := parse(t, "<ol><li>one</li><li>two</li></ol>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	for _, b := range doc.Blocks {
		require.Equal(t, types.BlockOrderedListItem, b.Type)
		require.Equal(t, 0, b.Depth)
	}
}

func TestParse_ListDepthMatchesNesting(t *testing.T) {
	const levels = 6
	var sb strings.Builder
	for i := 0; i < levels; i++ {
		sb.WriteString("<ul><li>item")
	}
	for i := 0; i < levels; i++ {
		sb.WriteString("</li></ul>")
	}

	doc, err := parse(t, sb.String())
	require.NoError(t, err)
	require.Len(t, doc.Blocks, levels)
	for i, b := range doc.Blocks {
		require.Equal(t, i, b.Depth)
	}
}

func TestParse_RangesStayInsideText(t *testing.T) {
	fragment := `
<p>
  <a href="https://springload.github.io/draftail/">Draftail</a>
  works well with
  <a href="https://github.com/springload/draftjs_exporter">draftjs_exporter</a>!
</p>
<img alt="Test image alt text" src="https://placekitten.com/g/260/160"/>
<ul>
  <li>
    List item
    <ul>
     <li><em>Nested</em> 📌 <strong>deep</strong></li>
    </ul>
  </li>
  <li>
    and back
  </li>
</ul>`
	doc, err := parse(t, fragment)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 5)
	require.Len(t, doc.EntityMap, 3)

	for _, b := range doc.Blocks {
		n := len(utf16.Encode([]rune(b.Text)))
		for _, r := range b.InlineStyleRanges {
			require.GreaterOrEqual(t, r.Offset, 0)
			require.LessOrEqual(t, r.Offset+r.Length, n)
		}
		for _, r := range b.EntityRanges {
			require.GreaterOrEqual(t, r.Offset, 0)
			require.LessOrEqual(t, r.Offset+r.Length, n)
		}
	}

	p := doc.Blocks[0]
	require.Equal(t, "Draftail", rangeText(p.Text, p.EntityRanges[0].Offset, p.EntityRanges[0].Length))
	require.Equal(t, "draftjs_exporter", rangeText(p.Text, p.EntityRanges[1].Offset, p.EntityRanges[1].Length))

	nested := doc.Blocks[3]
	require.Equal(t, 1, nested.Depth)
	require.Equal(t, "Nested 📌 deep", nested.Text)
	require.Equal(t, "deep", rangeText(nested.Text, nested.InlineStyleRanges[1].Offset, nested.InlineStyleRanges[1].Length))
	require.Equal(t, 10, nested.InlineStyleRanges[1].Offset)

	require.Equal(t, "\n    and back\n  ", doc.Blocks[4].Text)
	require.Equal(t, 0, doc.Blocks[4].Depth)
}

func TestParse_UppercaseTagsAreLowered(t *testing.T) {
	doc, err := parse(t, "<P>Hi <B>there</B></P>")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	require.Len(t, doc.Blocks[0].InlineStyleRanges, 1)
}

func TestParse_CustomRootTag(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.RootTag = "p"

	_, err := Parse("<b>x</b>", cfg, converter.Options{})
	var target *converter.ConfigError
	require.ErrorAs(t, err, &target)
}

func TestParseReader_Stream(t *testing.T) {
	doc, err := ParseReader(strings.NewReader("<p>streamed</p>"), nil, converter.Options{Keys: keys.NewSequential()})
	require.NoError(t, err)
	require.Equal(t, "b0", doc.Blocks[0].Key)
	require.Equal(t, "streamed", doc.Blocks[0].Text)
}
