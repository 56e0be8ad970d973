package html

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/mdtok/mdtok"
)

func render(src string) string {
	t := mdtok.ParseDocument([]byte(src))
	return string(Compile(t))
}

func TestCompileBlockQuoteParagraph(t *testing.T) {
	out := render("> a\n")
	assert.Contains(t, out, "<blockquote>")
	assert.Contains(t, out, "<p>a</p>")
	assert.Contains(t, out, "</blockquote>")
}

func TestCompileListItemIndentContinuation(t *testing.T) {
	out := render("* a\n  b\n")
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<li>")
	// the continuation line joins the same paragraph, not a second item.
	assert.Equal(t, 1, countOccurrences(out, "<li>"))
}

func TestCompileFencedCodeNotContinuedInsideList(t *testing.T) {
	// the fence opener isn't indented to the list item's content column, so
	// it must not be treated as part of the list item's contents.
	out := render("* a\n```\nb\n```\n")
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<pre><code>")
}

func TestCompileTightListNoParagraphWrap(t *testing.T) {
	out := render("* a\n  b\n* c\n")
	assert.Contains(t, out, "<ul>")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "<li>a\nb</li>")
	assert.Contains(t, out, "<li>c</li>")
}

func TestCompileLooseListWrapsParagraphs(t *testing.T) {
	out := render("* a\n\n* b\n")
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<li><p>a</p>\n</li>")
	assert.Contains(t, out, "<li><p>b</p>\n</li>")
}

func TestCompileLooseListFromInternalBlankLine(t *testing.T) {
	out := render("* a\n\n  b\n")
	assert.Contains(t, out, "<li><p>a</p>\n<p>b</p>\n</li>")
}

func TestCompileLinkReferenceDefinitionAndShortcut(t *testing.T) {
	out := render("[a]: b \"c\"\n\n[a]\n")
	assert.Contains(t, out, `<a href="b" title="c">a</a>`)
}

func TestCompileAutolink(t *testing.T) {
	out := render("<https://example.com>\n")
	assert.Contains(t, out, `<a href="https://example.com">https://example.com</a>`)
}

func TestCompileEmailAutolink(t *testing.T) {
	out := render("<foo@example.com>\n")
	assert.Contains(t, out, `<a href="mailto:foo@example.com">foo@example.com</a>`)
}

func TestCompileSetextHeadingWithID(t *testing.T) {
	out := render("Title\n=====\n")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, `id="title"`)
	assert.Contains(t, out, "Title</h1>")
}

func TestCompileAtxHeadingLevel(t *testing.T) {
	out := render("### Sub\n")
	assert.Contains(t, out, "<h3")
	assert.Contains(t, out, "Sub</h3>")
}

func TestCompileFencedCodeLanguageClass(t *testing.T) {
	out := render("```go\nfmt.Println(1)\n```\n")
	assert.Contains(t, out, `class="language-go"`)
	assert.Contains(t, out, "fmt.Println(1)")
}

func TestCompileEmphasisAndStrong(t *testing.T) {
	out := render("a *b* c **d** e\n")
	assert.Contains(t, out, "<em>b</em>")
	assert.Contains(t, out, "<strong>d</strong>")
}

func TestCompileThematicBreak(t *testing.T) {
	out := render("---\n")
	assert.Contains(t, out, "<hr />")
}

func TestCompileCodeSpan(t *testing.T) {
	out := render("a `b` c\n")
	assert.Contains(t, out, "<code>b</code>")
}

func TestCompileImageReference(t *testing.T) {
	out := render("[x]: /y.png \"t\"\n\n![alt][x]\n")
	assert.Contains(t, out, `<img src="/y.png" alt="alt" title="t" />`)
}

func TestCompileEscapesHTMLSpecialChars(t *testing.T) {
	out := render("a < b & c\n")
	assert.Contains(t, out, "&lt;")
	assert.Contains(t, out, "&amp;")
}

func countOccurrences(s, substr string) int {
	n := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			n++
		}
	}
	return n
}
