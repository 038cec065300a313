package classify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokount/internal/apperr"
	"tokount/internal/languages"
	"tokount/internal/model"
)

var registry = languages.NewRegistry()

// mustLanguage 是测试辅助函数，按名称取出内置语言。
func mustLanguage(t *testing.T, name string) *languages.Language {
	t.Helper()

	language, ok := registry.ByName(name)
	require.True(t, ok, "language %s not registered", name)
	return language
}

// physicalLines 独立计算物理行数，用于校验分类结果之和。
func physicalLines(content string) int64 {
	if content == "" {
		return 0
	}
	lines := int64(strings.Count(content, "\n"))
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return lines
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		language string
		content  string
		want     model.LineCounts
	}{
		{
			name:     "empty file",
			language: "Go",
			content:  "",
			want:     model.LineCounts{},
		},
		{
			name:     "single unterminated code line",
			language: "Go",
			content:  "x",
			want:     model.LineCounts{Code: 1},
		},
		{
			name:     "header blank code",
			language: "Go",
			content:  "// header\n\ncode();\n",
			want:     model.LineCounts{Comment: 1, Blank: 1, Code: 1},
		},
		{
			name:     "unterminated block comment",
			language: "C",
			content:  "/* abc",
			want:     model.LineCounts{Comment: 1},
		},
		{
			name:     "whitespace only",
			language: "Go",
			content:  "  \n\t\n \r\n",
			want:     model.LineCounts{Blank: 3},
		},
		{
			name:     "trailing comment counts as code",
			language: "Go",
			content:  "x := 1 // note\n",
			want:     model.LineCounts{Code: 1},
		},
		{
			name:     "code then block comment opener",
			language: "C",
			content:  "int a; /* open\n   still inside\n\n*/\n",
			want:     model.LineCounts{Code: 1, Comment: 3},
		},
		{
			name:     "block close followed by code",
			language: "C",
			content:  "/*\n*/ code();\n",
			want:     model.LineCounts{Comment: 1, Code: 1},
		},
		{
			name:     "comment markers inside string are inert",
			language: "Go",
			content:  "s := \"hello // world /* x\"\nt := 2\n",
			want:     model.LineCounts{Code: 2},
		},
		{
			name:     "escaped quote keeps string open",
			language: "C",
			content:  "char *s = \"a \\\" b\"; \n// after\n",
			want:     model.LineCounts{Code: 1, Comment: 1},
		},
		{
			name:     "escape before newline still ends the line",
			language: "C",
			content:  "s = \"abc\\\ndef\";\n// c\n",
			want:     model.LineCounts{Code: 2, Comment: 1},
		},
		{
			name:     "nested block comment",
			language: "Rust",
			content:  "/* a /* b */ still comment */\nfn main() {}\n",
			want:     model.LineCounts{Comment: 1, Code: 1},
		},
		{
			name:     "non nested language closes on first marker",
			language: "C",
			content:  "/* a /* b */ tail */\n",
			want:     model.LineCounts{Code: 1},
		},
		{
			name:     "nested comment spanning lines",
			language: "Haskell",
			content:  "{- outer\n{- inner -}\nstill outer\n-}\nmain = pure ()\n",
			want:     model.LineCounts{Comment: 4, Code: 1},
		},
		{
			name:     "python triple quoted string spans lines",
			language: "Python",
			content:  "x = \"\"\"\n\n# not a comment\n\"\"\"\n# real\n",
			want:     model.LineCounts{Code: 4, Comment: 1},
		},
		{
			name:     "lua block comment wins over line comment",
			language: "Lua",
			content:  "--[[ start\nmiddle\n]]\n-- line\nlocal x = 1\n",
			want:     model.LineCounts{Comment: 4, Code: 1},
		},
		{
			name:     "crlf line endings",
			language: "Go",
			content:  "a := 1\r\n\r\n// c\r\n",
			want:     model.LineCounts{Code: 1, Blank: 1, Comment: 1},
		},
		{
			name:     "unterminated string at eof",
			language: "Go",
			content:  "s := \"abc\n\n",
			want:     model.LineCounts{Code: 2},
		},
		{
			name:     "language without comments",
			language: "JSON",
			content:  "{\n  \"a\": \"// b\"\n}\n",
			want:     model.LineCounts{Code: 3},
		},
		{
			name:     "ruby begin end block",
			language: "Ruby",
			content:  "=begin\ncomment body\n=end\nputs \"ok\"\n",
			want:     model.LineCounts{Comment: 3, Code: 1},
		},
		{
			name:     "python hash inside string",
			language: "Python",
			content:  "value = \"hello # world\"\n# real comment\n",
			want:     model.LineCounts{Comment: 1, Code: 1},
		},
		{
			name:     "sql nested block then line comment",
			language: "SQL",
			content:  "SELECT 1; /* outer /* inner */ outer */\n-- line comment\n/* a /* b */\nstill comment */\n",
			want:     model.LineCounts{Comment: 3, Code: 1},
		},
		{
			name:     "markdown prose counts as comment",
			language: "Markdown",
			content:  "# Title\n\nSome prose here.\nMore prose.\n",
			want:     model.LineCounts{Blank: 1, Comment: 3},
		},
		{
			name:     "batch remarks ignore case",
			language: "Batch",
			content:  "REM upper\nRem mixed\nrem\tlower\nREM\n@rem quiet\n:: label\n",
			want:     model.LineCounts{Comment: 6},
		},
		{
			name:     "batch keyword needs a word boundary",
			language: "Batch",
			content:  "remove.exe\nREMARK\necho rem\n",
			want:     model.LineCounts{Code: 3},
		},
		{
			name:     "sql line comment after code",
			language: "SQL",
			content:  "select 1; -- trailing\n-- only\n",
			want:     model.LineCounts{Code: 1, Comment: 1},
		},
		{
			name:     "unicode whitespace is blank",
			language: "Go",
			content:  " 　\nx\n",
			want:     model.LineCounts{Blank: 1, Code: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Classify(mustLanguage(t, tc.language), []byte(tc.content))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, physicalLines(tc.content), got.Lines())
		})
	}
}

func TestClassifyByteOrderMark(t *testing.T) {
	t.Parallel()

	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("\n// c\n")...)
	got, err := Classify(mustLanguage(t, "Go"), content)
	require.NoError(t, err)
	assert.Equal(t, model.LineCounts{Blank: 1, Comment: 1}, got)
}

func TestClassifyInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := Classify(mustLanguage(t, "Go"), []byte("x := \xff\xfe\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, apperr.DecodeError, apperr.KindOf(err))
}

func TestClassifyBinary(t *testing.T) {
	t.Parallel()

	_, err := Classify(mustLanguage(t, "C"), []byte("int x;\x00\x01\x02\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinary)
	assert.Equal(t, apperr.DecodeError, apperr.KindOf(err))
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	content := []byte("package main\n\n/* doc\n*/\nfunc main() { // x\n}\n")
	language := mustLanguage(t, "Go")

	first, err := Classify(language, content)
	require.NoError(t, err)
	second, err := Classify(language, content)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassifyReader(t *testing.T) {
	t.Parallel()

	content := "# comment\nprint('# not comment')\n\n"
	got, err := ClassifyReader(mustLanguage(t, "Python"), bytes.NewBufferString(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, model.LineCounts{Comment: 1, Code: 1, Blank: 1}, got)
}

func TestClassifyCustomLanguage(t *testing.T) {
	t.Parallel()

	language := &languages.Language{
		Name:          "Custom",
		LineComments:  []string{";"},
		BlockComments: []languages.Delimiter{{Open: "#|", Close: "|#"}, {Open: "", Close: ""}},
		Nested:        true,
		Quotes:        []languages.Quote{{Open: "<<", Close: ">>"}},
	}

	content := "#| a #| b |# c |#\n(x \"<<;>>\") ; trailing\n<< ;\n>>\n"
	got, err := Classify(language, []byte(content))
	require.NoError(t, err)
	assert.Equal(t, model.LineCounts{Comment: 1, Code: 3}, got)
}

// TestClassifyLineInvariant 对所有内置语言检验 blank+comment+code 等于物理行数。
func TestClassifyLineInvariant(t *testing.T) {
	t.Parallel()

	samples := []string{
		"",
		"\n",
		"a",
		"a\n\n\n",
		"/* x\n\n*/ y\n// z",
		"\"unterminated\n'x\n",
		"# c\n-- d\n{- e -}\n(* f *)\n<!-- g -->\n",
		"=begin\n=end\n\"\"\"\n'''\n`raw`\n",
	}

	for _, descriptor := range registry.Languages() {
		language := mustLanguage(t, descriptor.Name)
		for _, sample := range samples {
			got, err := Classify(language, []byte(sample))
			require.NoError(t, err)
			assert.Equal(t, physicalLines(sample), got.Lines(), "%s: %q", descriptor.Name, sample)
		}
	}
}
