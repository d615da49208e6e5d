// Package render 将编辑器的块结构内容转换为 HTML 或 Markdown
package render

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var ErrInvalidContent = errors.New("invalid block content")

// Document 编辑器输出的整体结构
type Document struct {
	Time    int64   `json:"time"`
	Blocks  []Block `json:"blocks"`
	Version string  `json:"version"`
}

// Block 单个内容块，Data 按 Type 延迟解析
type Block struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type textData struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type listData struct {
	Style string     `json:"style"`
	Items []listItem `json:"items"`
}

// listItem 兼容字符串条目和 {content, items} 嵌套条目
type listItem struct {
	Content string
	Items   []listItem
}

func (l *listItem) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		l.Content = s
		return nil
	}
	var obj struct {
		Content string     `json:"content"`
		Text    string     `json:"text"`
		Items   []listItem `json:"items"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	l.Content = obj.Content
	if l.Content == "" {
		l.Content = obj.Text
	}
	l.Items = obj.Items
	return nil
}

type checklistData struct {
	Items []struct {
		Text    string `json:"text"`
		Checked bool   `json:"checked"`
	} `json:"items"`
}

type quoteData struct {
	Text    string `json:"text"`
	Caption string `json:"caption"`
}

type codeData struct {
	Code string `json:"code"`
}

type imageData struct {
	File struct {
		URL string `json:"url"`
	} `json:"file"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

func (d imageData) src() string {
	if d.File.URL != "" {
		return d.File.URL
	}
	return d.URL
}

type tableData struct {
	WithHeadings bool       `json:"withHeadings"`
	Content      [][]string `json:"content"`
}

// Parse 解析内容，非法 JSON 返回 ErrInvalidContent
func Parse(content string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.Wrap(ErrInvalidContent, err.Error())
	}
	return &doc, nil
}

func headerLevel(level int) int {
	if level < 1 || level > 6 {
		return 2
	}
	return level
}

// safeURL 仅允许 http、https、mailto 和相对地址
func safeURL(raw string) bool {
	u := strings.TrimSpace(strings.ToLower(raw))
	if u == "" {
		return false
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "mailto:") {
		return true
	}
	scheme, _, found := strings.Cut(u, ":")
	if !found {
		return true
	}
	// 冒号出现在路径或查询中时仍视为相对地址
	return strings.ContainsAny(scheme, "/?#")
}
