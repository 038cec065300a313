package languages

import (
	"slices"
	"strings"
)

// Delimiter 是一对块注释起止标记。
type Delimiter struct {
	Open  string
	Close string
}

// Quote 描述一种字符串字面量。
// Escape 为 0 表示该字符串不支持转义（例如原始字符串）。
type Quote struct {
	Open   string
	Close  string
	Escape byte
}

// Language 是单个语言的语法描述。
// 所有语言共用同一个状态机，差异只体现在这里的数据上。
// 注册后的 Language 只读，可被任意 goroutine 并发使用。
type Language struct {
	Name string
	// Filenames 为精确文件名匹配，优先级高于后缀。
	Filenames []string
	// Extensions 包含点号，例如 .go。
	Extensions []string
	// CaseInsensitive 为 true 时后缀匹配和注释、字符串标记的识别都忽略大小写。
	CaseInsensitive bool
	// Prose 表示文档类语言（例如 Markdown），非空行都按注释计数。
	Prose bool

	LineComments  []string
	BlockComments []Delimiter
	// Nested 表示块注释可以嵌套。
	Nested bool
	Quotes []Quote
}

// TokenKind 表示开启标记的种类。
type TokenKind uint8

const (
	TokenLineComment TokenKind = iota + 1
	TokenBlockComment
	TokenString
)

// Token 是状态机在 Code 状态下识别的开启标记。
type Token struct {
	Kind   TokenKind
	Open   string
	Close  string
	Escape byte
}

// Openers 返回该语言所有开启标记，按长度降序排列，
// 保证 """ 先于 "、--[[ 先于 -- 被匹配。
func (l *Language) Openers() []Token {
	tokens := make([]Token, 0, len(l.LineComments)+len(l.BlockComments)+len(l.Quotes))
	for _, marker := range l.LineComments {
		tokens = append(tokens, Token{Kind: TokenLineComment, Open: marker})
	}
	for _, pair := range l.BlockComments {
		tokens = append(tokens, Token{Kind: TokenBlockComment, Open: pair.Open, Close: pair.Close})
	}
	for _, quote := range l.Quotes {
		tokens = append(tokens, Token{Kind: TokenString, Open: quote.Open, Close: quote.Close, Escape: quote.Escape})
	}

	slices.SortStableFunc(tokens, func(a Token, b Token) int {
		return len(b.Open) - len(a.Open)
	})
	return tokens
}

// CommentSyntax 返回便于展示的注释语法摘要。
func (l *Language) CommentSyntax() string {
	if l.Prose {
		return "(prose)"
	}
	parts := make([]string, 0, len(l.LineComments)+len(l.BlockComments))
	parts = append(parts, l.LineComments...)
	for _, pair := range l.BlockComments {
		parts = append(parts, pair.Open+" "+pair.Close)
	}
	syntax := strings.Join(parts, ", ")
	if l.Nested && len(l.BlockComments) > 0 {
		syntax += " (nested)"
	}
	return syntax
}
