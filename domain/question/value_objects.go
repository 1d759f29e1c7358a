package question

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)
	nonWord       = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	hyphenRun     = regexp.MustCompile(`--+`)
)

// Slug Value object - URL 友好的标题文本，不可变
type Slug struct {
	value string
}

// NewSlug 使用已经规范化的文本创建 Slug（用于从存储重建）
func NewSlug(value string) Slug {
	return Slug{value: value}
}

// SlugFromText 将任意文本规范化为 Slug
//
// Example: "An example title" => "an-example-title"
func SlugFromText(text string) Slug {
	s := norm.NFKD.String(text) // 分解重音符号，随后作为非单词字符被移除
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "_", "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.TrimSuffix(s, "-")
	return Slug{value: s}
}

// Value Get slug value
func (s Slug) Value() string {
	return s.value
}

// Equals Compare if two Slug value objects are equal
func (s Slug) Equals(other Slug) bool {
	return s.value == other.value
}

// String Implement Stringer interface
func (s Slug) String() string {
	return s.value
}
