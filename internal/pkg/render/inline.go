package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var htmlInlineTags = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true, "u": true,
	"s": true, "code": true, "mark": true,
}

// fragment 将行内标记解析为 body 上下文中的片段
func fragment(s string) *goquery.Selection {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		root.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	} else {
		for _, n := range nodes {
			root.AppendChild(n)
		}
	}
	return goquery.NewDocumentFromNode(root).Selection.Contents()
}

func dropped(name string) bool {
	return name == "script" || name == "style"
}

// inlineHTML 只保留白名单标签，其余标签去壳保留文本
func inlineHTML(s string) string {
	var b strings.Builder
	fragment(s).Each(func(_ int, sel *goquery.Selection) {
		writeInlineHTML(&b, sel)
	})
	return b.String()
}

func writeInlineHTML(b *strings.Builder, sel *goquery.Selection) {
	node := sel.Get(0)
	switch node.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(node.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	name := goquery.NodeName(sel)
	children := func() {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			writeInlineHTML(b, c)
		})
	}

	switch {
	case dropped(name):
	case name == "br":
		b.WriteString("<br>")
	case name == "a":
		href, ok := sel.Attr("href")
		if !ok || !safeURL(href) {
			children()
			return
		}
		b.WriteString(`<a href="` + html.EscapeString(href) + `">`)
		children()
		b.WriteString("</a>")
	case htmlInlineTags[name]:
		b.WriteString("<" + name + ">")
		children()
		b.WriteString("</" + name + ">")
	default:
		children()
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"~", `\~`,
	"<", `\<`,
	">", `\>`,
)

// inlineMarkdown 将行内标记转换为 Markdown
func inlineMarkdown(s string) string {
	var b strings.Builder
	fragment(s).Each(func(_ int, sel *goquery.Selection) {
		writeInlineMarkdown(&b, sel)
	})
	return b.String()
}

func writeInlineMarkdown(b *strings.Builder, sel *goquery.Selection) {
	node := sel.Get(0)
	switch node.Type {
	case html.TextNode:
		b.WriteString(markdownEscaper.Replace(node.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	name := goquery.NodeName(sel)
	children := func() {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			writeInlineMarkdown(b, c)
		})
	}
	wrap := func(mark string) {
		b.WriteString(mark)
		children()
		b.WriteString(mark)
	}

	switch name {
	case "script", "style":
	case "br":
		b.WriteString("  \n")
	case "b", "strong":
		wrap("**")
	case "i", "em":
		wrap("_")
	case "s", "del", "strike":
		wrap("~~")
	case "code":
		b.WriteString(codeSpan(sel.Text()))
	case "a":
		href, ok := sel.Attr("href")
		if !ok || !safeURL(href) {
			children()
			return
		}
		b.WriteString("[")
		children()
		b.WriteString("](" + markdownURL(href) + ")")
	default:
		children()
	}
}

// markdownURLEscaper 链接目标中会提前结束 Markdown 链接的字符
var markdownURLEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
	"\n", "%0A",
	"\r", "%0D",
	"\t", "%09",
)

func markdownURL(href string) string {
	return markdownURLEscaper.Replace(strings.TrimSpace(href))
}

// codeSpan 围栏比内容中最长的连续反引号多一个
func codeSpan(text string) string {
	if text == "" {
		return ""
	}
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return fence + text + fence
}

// plainText 去掉全部标记
func plainText(s string) string {
	var b strings.Builder
	fragment(s).Each(func(_ int, sel *goquery.Selection) {
		if name := goquery.NodeName(sel); dropped(name) {
			return
		}
		b.WriteString(sel.Text())
	})
	return strings.TrimSpace(b.String())
}
