package tools

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// HTMLToText 去掉 HTML 标签，只保留文本内容，script/style 中的内容会被丢弃
func HTMLToText(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF 或解析错误都返回已读到的文本
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Excerpt 返回纯文本摘要，按字符截取 n 个并追加省略号
func Excerpt(content string, n int) string {
	text := HTMLToText(content)
	if utf8.RuneCountInString(text) <= n {
		return text + "..."
	}
	return string([]rune(text)[:n]) + "..."
}
