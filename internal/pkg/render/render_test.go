package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "time": 1700000000000,
  "version": "2.28.0",
  "blocks": [
    {"id": "a", "type": "header", "data": {"text": "Hello <i>world</i>", "level": 2}},
    {"id": "b", "type": "paragraph", "data": {"text": "Some <b>bold</b> and <a href=\"https://example.com\">link</a><script>alert(1)</script>"}},
    {"id": "c", "type": "list", "data": {"style": "ordered", "items": ["one", {"content": "two", "items": [{"content": "nested", "items": []}]}]}},
    {"id": "d", "type": "checklist", "data": {"items": [{"text": "done", "checked": true}, {"text": "todo", "checked": false}]}},
    {"id": "e", "type": "code", "data": {"code": "if a < b {}"}},
    {"id": "f", "type": "delimiter", "data": {}},
    {"id": "g", "type": "unknownBlock", "data": {"x": 1}}
  ]
}`

func TestToHTML(t *testing.T) {
	out, err := ToHTML(sample)
	require.NoError(t, err)

	assert.Contains(t, out, "<h2>Hello <i>world</i></h2>")
	assert.Contains(t, out, `<p>Some <b>bold</b> and <a href="https://example.com">link</a></p>`)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "<ol><li>one</li><li>two<ol><li>nested</li></ol></li></ol>")
	assert.Contains(t, out, `<li><input type="checkbox" disabled checked> done</li>`)
	assert.Contains(t, out, "<pre><code>if a &lt; b {}</code></pre>")
	assert.Contains(t, out, "<hr>")
	assert.NotContains(t, out, "unknownBlock")
}

func TestToHTML_StripsUnsafeMarkup(t *testing.T) {
	content := `{"blocks":[{"type":"paragraph","data":{"text":"<span onclick=\"x()\">hi</span> <a href=\"javascript:alert(1)\">bad</a> <img src=x onerror=y>"}}]}`

	out, err := ToHTML(content)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi bad </p>", out)
}

func TestToHTML_Table(t *testing.T) {
	content := `{"blocks":[{"type":"table","data":{"withHeadings":true,"content":[["Name","Qty"],["apple","3"]]}}]}`

	out, err := ToHTML(content)
	require.NoError(t, err)
	assert.Equal(t, "<table><thead><tr><th>Name</th><th>Qty</th></tr></thead><tbody><tr><td>apple</td><td>3</td></tr></tbody></table>", out)
}

func TestToMarkdown(t *testing.T) {
	out, err := ToMarkdown(sample)
	require.NoError(t, err)

	assert.Contains(t, out, "## Hello _world_\n")
	assert.Contains(t, out, "Some **bold** and [link](https://example.com)\n")
	assert.Contains(t, out, "1. one\n2. two\n  1. nested")
	assert.Contains(t, out, "- [x] done\n- [ ] todo")
	assert.Contains(t, out, "```\nif a < b {}\n```")
	assert.Contains(t, out, "\n---\n")
	assert.NotContains(t, out, "alert")
}

func TestToMarkdown_EscapesControlCharacters(t *testing.T) {
	content := `{"blocks":[{"type":"paragraph","data":{"text":"2 * 3 = _six_"}}]}`

	out, err := ToMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "2 \\* 3 = \\_six\\_\n", out)
}

func TestToMarkdown_QuoteAndImage(t *testing.T) {
	content := `{"blocks":[
		{"type":"quote","data":{"text":"stay hungry","caption":"jobs"}},
		{"type":"image","data":{"file":{"url":"/uploads/a.png"},"caption":"a <b>cat</b>"}}
	]}`

	out, err := ToMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "> stay hungry\n>\n> _jobs_\n\n![a cat](/uploads/a.png)\n", out)
}

func TestToMarkdown_LinkTargetCannotCloseEarly(t *testing.T) {
	content := `{"blocks":[{"type":"paragraph","data":{"text":"<a href=\"http://a/x) [y](javascript:alert(1)\">go</a>"}}]}`

	out, err := ToMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "[go](http://a/x%29%20[y]%28javascript:alert%281%29)\n", out)
}

func TestToMarkdown_CodeSpanWithBackticks(t *testing.T) {
	content := `{"blocks":[{"type":"paragraph","data":{"text":"<code>a` + "`" + `b</code> and <code>` + "`" + `x</code>"}}]}`

	out, err := ToMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "``a`b`` and `` `x ``\n", out)
}

func TestCodeSpan(t *testing.T) {
	assert.Equal(t, "`plain`", codeSpan("plain"))
	assert.Equal(t, "```a``b```", codeSpan("a``b"))
	assert.Empty(t, codeSpan(""))
}

func TestToMarkdown_TableWithoutHeadings(t *testing.T) {
	content := `{"blocks":[{"type":"table","data":{"withHeadings":false,"content":[["a|b","c"]]}}]}`

	out, err := ToMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "|  |  |\n| --- | --- |\n| a\\|b | c |\n", out)
}

func TestInvalidContent(t *testing.T) {
	_, err := ToHTML("not json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContent))

	_, err = ToMarkdown("{")
	assert.True(t, errors.Is(err, ErrInvalidContent))
}

func TestEmptyDocument(t *testing.T) {
	out, err := ToMarkdown(`{"blocks":[]}`)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSafeURL(t *testing.T) {
	assert.True(t, safeURL("https://example.com"))
	assert.True(t, safeURL("mailto:me@example.com"))
	assert.True(t, safeURL("/uploads/a.png"))
	assert.True(t, safeURL("a/b:c"))
	assert.False(t, safeURL("javascript:alert(1)"))
	assert.False(t, safeURL("data:text/html;base64,xx"))
	assert.False(t, safeURL(""))
}
