package render

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
)

// ToHTML 渲染为经过清洗的 HTML，未知块类型被忽略
func ToHTML(content string) (string, error) {
	doc, err := Parse(content)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		if out := blockHTML(block); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func blockHTML(block Block) string {
	switch block.Type {
	case "paragraph":
		var d textData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return "<p>" + inlineHTML(d.Text) + "</p>"
	case "header":
		var d textData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		tag := "h" + strconv.Itoa(headerLevel(d.Level))
		return "<" + tag + ">" + inlineHTML(d.Text) + "</" + tag + ">"
	case "list":
		var d listData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		var b strings.Builder
		writeListHTML(&b, d.Style == "ordered", d.Items)
		return b.String()
	case "checklist":
		var d checklistData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		var b strings.Builder
		b.WriteString(`<ul class="checklist">`)
		for _, item := range d.Items {
			b.WriteString(`<li><input type="checkbox" disabled`)
			if item.Checked {
				b.WriteString(" checked")
			}
			b.WriteString("> " + inlineHTML(item.Text) + "</li>")
		}
		b.WriteString("</ul>")
		return b.String()
	case "quote":
		var d quoteData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		out := "<blockquote><p>" + inlineHTML(d.Text) + "</p>"
		if d.Caption != "" {
			out += "<cite>" + inlineHTML(d.Caption) + "</cite>"
		}
		return out + "</blockquote>"
	case "code":
		var d codeData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return "<pre><code>" + html.EscapeString(d.Code) + "</code></pre>"
	case "delimiter":
		return "<hr>"
	case "image":
		var d imageData
		if json.Unmarshal(block.Data, &d) != nil || !safeURL(d.src()) {
			return ""
		}
		out := `<figure><img src="` + html.EscapeString(d.src()) + `" alt="` + html.EscapeString(plainText(d.Caption)) + `">`
		if d.Caption != "" {
			out += "<figcaption>" + inlineHTML(d.Caption) + "</figcaption>"
		}
		return out + "</figure>"
	case "table":
		var d tableData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return tableHTML(d)
	default:
		return ""
	}
}

func writeListHTML(b *strings.Builder, ordered bool, items []listItem) {
	tag := "ul"
	if ordered {
		tag = "ol"
	}
	b.WriteString("<" + tag + ">")
	for _, item := range items {
		b.WriteString("<li>" + inlineHTML(item.Content))
		if len(item.Items) > 0 {
			writeListHTML(b, ordered, item.Items)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
}

func tableHTML(d tableData) string {
	if len(d.Content) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<table>")
	rows := d.Content
	if d.WithHeadings {
		b.WriteString("<thead><tr>")
		for _, cell := range rows[0] {
			b.WriteString("<th>" + inlineHTML(cell) + "</th>")
		}
		b.WriteString("</tr></thead>")
		rows = rows[1:]
	}
	b.WriteString("<tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + inlineHTML(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
