package render

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ToMarkdown 渲染为 Markdown，块之间以空行分隔
func ToMarkdown(content string) (string, error) {
	doc, err := Parse(content)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		if out := blockMarkdown(block); out != "" {
			parts = append(parts, out)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

func blockMarkdown(block Block) string {
	switch block.Type {
	case "paragraph":
		var d textData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return inlineMarkdown(d.Text)
	case "header":
		var d textData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return strings.Repeat("#", headerLevel(d.Level)) + " " + inlineMarkdown(d.Text)
	case "list":
		var d listData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		var lines []string
		writeListMarkdown(&lines, d.Style == "ordered", d.Items, 0)
		return strings.Join(lines, "\n")
	case "checklist":
		var d checklistData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		lines := make([]string, 0, len(d.Items))
		for _, item := range d.Items {
			box := "[ ]"
			if item.Checked {
				box = "[x]"
			}
			lines = append(lines, "- "+box+" "+inlineMarkdown(item.Text))
		}
		return strings.Join(lines, "\n")
	case "quote":
		var d quoteData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		text := inlineMarkdown(d.Text)
		if d.Caption != "" {
			text += "\n\n_" + inlineMarkdown(d.Caption) + "_"
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight("> "+line, " ")
		}
		return strings.Join(lines, "\n")
	case "code":
		var d codeData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return "```\n" + d.Code + "\n```"
	case "delimiter":
		return "---"
	case "image":
		var d imageData
		if json.Unmarshal(block.Data, &d) != nil || !safeURL(d.src()) {
			return ""
		}
		return "![" + markdownEscaper.Replace(plainText(d.Caption)) + "](" + markdownURL(d.src()) + ")"
	case "table":
		var d tableData
		if json.Unmarshal(block.Data, &d) != nil {
			return ""
		}
		return tableMarkdown(d)
	default:
		return ""
	}
}

func writeListMarkdown(lines *[]string, ordered bool, items []listItem, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, item := range items {
		marker := "- "
		if ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		*lines = append(*lines, indent+marker+inlineMarkdown(item.Content))
		if len(item.Items) > 0 {
			writeListMarkdown(lines, ordered, item.Items, depth+1)
		}
	}
}

func tableMarkdown(d tableData) string {
	if len(d.Content) == 0 {
		return ""
	}
	width := 0
	for _, row := range d.Content {
		width = max(width, len(row))
	}
	if width == 0 {
		return ""
	}

	row := func(cells []string) string {
		out := make([]string, width)
		for i := range out {
			if i < len(cells) {
				out[i] = strings.ReplaceAll(inlineMarkdown(cells[i]), "|", `\|`)
			}
		}
		return "| " + strings.Join(out, " | ") + " |"
	}

	rows := d.Content
	header := make([]string, width)
	if d.WithHeadings {
		header = rows[0]
		rows = rows[1:]
	}
	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}

	lines := []string{row(header), "| " + strings.Join(sep, " | ") + " |"}
	for _, r := range rows {
		lines = append(lines, row(r))
	}
	return strings.Join(lines, "\n")
}
