// Package classify 实现按语言语法数据驱动的行分类状态机。
//
// 每个文件单次从左到右扫描、不回溯。每个物理行只会被归为 blank、comment、code 之一：
// 行内出现任何代码字节即为 code（"代码优先"），否则有注释即为 comment，否则为 blank。
package classify

import (
	"bytes"
	"errors"
	"io"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/src-d/enry/v2"

	"tokount/internal/apperr"
	"tokount/internal/languages"
	"tokount/internal/model"
)

var (
	// ErrInvalidUTF8 表示文件内容不是合法的 UTF-8 文本。
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
	// ErrBinary 表示文件内容看起来是二进制数据。
	ErrBinary = errors.New("content looks binary")
)

// utf8BOM 是部分编辑器写在文件开头的字节序标记，不参与分类。
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// state 是状态机所处的状态。
type state uint8

const (
	stateCode state = iota
	stateLineComment
	stateBlockComment
	stateString
)

// Classify 对一个文件的完整内容做行分类。
// 内容不是合法文本时返回 DecodeError 类别的错误，调用方应跳过该文件。
func Classify(language *languages.Language, content []byte) (model.LineCounts, error) {
	if enry.IsBinary(content) {
		return model.LineCounts{}, apperr.Wrap(apperr.DecodeError, "decode content", ErrBinary)
	}
	if !utf8.Valid(content) {
		return model.LineCounts{}, apperr.Wrap(apperr.DecodeError, "decode content", ErrInvalidUTF8)
	}

	m := newMachine(language)
	m.run(bytes.TrimPrefix(content, utf8BOM))
	return m.counts, nil
}

// ClassifyReader 读取 reader 的全部内容后分类。
// sizeHint 用于预分配缓冲区，未知时传 0。
func ClassifyReader(language *languages.Language, reader io.Reader, sizeHint int64) (model.LineCounts, error) {
	var buffer bytes.Buffer
	if hint, err := safecast.Conv[int](sizeHint); err == nil && hint > 0 {
		buffer.Grow(hint)
	}
	if _, err := buffer.ReadFrom(reader); err != nil {
		return model.LineCounts{}, apperr.Wrap(apperr.TransientIoError, "read content", err)
	}
	return Classify(language, buffer.Bytes())
}

// token 是 languages.Token 的字节形式，避免扫描时反复转换。
type token struct {
	kind   languages.TokenKind
	open   []byte
	close  []byte
	escape byte
	// keyword 表示开启标记以字母结尾（例如 REM、=begin），其后必须是空白或行尾。
	keyword bool
}

// machine 保存单个文件的扫描状态，不在文件之间共享。
type machine struct {
	openers []token
	nested  bool
	fold    bool
	prose   bool

	state  state
	depth  int
	active token

	// 当前物理行的分类标记。
	hasCode    bool
	hasComment bool
	lineOpen   bool

	counts model.LineCounts
}

func newMachine(language *languages.Language) *machine {
	sorted := language.Openers()
	openers := make([]token, 0, len(sorted))
	for _, item := range sorted {
		// 空标记会让状态机原地打转，直接忽略。
		if item.Open == "" || (item.Kind != languages.TokenLineComment && item.Close == "") {
			continue
		}
		openers = append(openers, token{
			kind:    item.Kind,
			open:    []byte(item.Open),
			close:   []byte(item.Close),
			escape:  item.Escape,
			keyword: isLetter(item.Open[len(item.Open)-1]),
		})
	}
	return &machine{
		openers: openers,
		nested:  language.Nested,
		fold:    language.CaseInsensitive,
		prose:   language.Prose,
	}
}

// run 逐字节推进状态机，换行时结算当前行。
func (m *machine) run(content []byte) {
	for idx := 0; idx < len(content); {
		if content[idx] == '\n' {
			m.endLine()
			idx++
			continue
		}

		m.lineOpen = true
		idx += m.step(content, idx)
	}

	// 文件末尾没有换行的最后一行同样计数；
	// 停留在块注释或字符串中的截断文件按已累积的状态结算。
	if m.lineOpen {
		m.endLine()
	}
}

// step 处理 idx 处的输入，返回消费的字节数（至少为 1，且不会越过换行符）。
func (m *machine) step(content []byte, idx int) int {
	rest := content[idx:]

	switch m.state {
	case stateLineComment:
		if end := bytes.IndexByte(rest, '\n'); end > 0 {
			return end
		}
		return len(rest)

	case stateBlockComment:
		if m.hasPrefix(rest, m.active.close) {
			m.depth--
			if m.depth == 0 {
				m.state = stateCode
			}
			return len(m.active.close)
		}
		// 非嵌套语言忽略注释内部的开启标记。
		if m.nested && m.hasPrefix(rest, m.active.open) {
			m.depth++
			return len(m.active.open)
		}
		return 1

	case stateString:
		m.hasCode = true
		if m.active.escape != 0 && rest[0] == m.active.escape {
			// 转义符吞掉下一个字节，但换行符仍需交给 run 结算行。
			if len(rest) > 1 && rest[1] != '\n' {
				return 2
			}
			return 1
		}
		if m.hasPrefix(rest, m.active.close) {
			m.state = stateCode
			return len(m.active.close)
		}
		return 1
	}

	return m.stepCode(rest)
}

// stepCode 处理 Code 状态：跳过空白，识别开启标记，其余字节都是代码。
func (m *machine) stepCode(rest []byte) int {
	if size, ok := leadingSpace(rest); ok {
		return size
	}

	for _, opener := range m.openers {
		if !m.hasPrefix(rest, opener.open) {
			continue
		}
		if opener.keyword && !wordEnds(rest[len(opener.open):]) {
			continue
		}

		switch opener.kind {
		case languages.TokenLineComment:
			m.hasComment = true
			m.state = stateLineComment
		case languages.TokenBlockComment:
			m.hasComment = true
			m.state = stateBlockComment
			m.depth = 1
			m.active = opener
		case languages.TokenString:
			m.hasCode = true
			m.state = stateString
			m.active = opener
		}
		return len(opener.open)
	}

	if m.prose {
		m.hasComment = true
	} else {
		m.hasCode = true
	}
	if rest[0] < utf8.RuneSelf {
		return 1
	}
	_, size := utf8.DecodeRune(rest)
	return size
}

// endLine 结算当前物理行，并把跨行状态带到下一行。
func (m *machine) endLine() {
	switch {
	case m.hasCode:
		m.counts.Code++
	case m.hasComment:
		m.counts.Comment++
	default:
		m.counts.Blank++
	}

	if m.state == stateLineComment {
		m.state = stateCode
	}

	m.lineOpen = false
	m.hasComment = m.state == stateBlockComment
	m.hasCode = m.state == stateString
}

// leadingSpace 判断 rest 是否以空白字符开头，并返回其字节长度。
func leadingSpace(rest []byte) (int, bool) {
	b := rest[0]
	if b < utf8.RuneSelf {
		switch b {
		case ' ', '\t', '\r', '\v', '\f':
			return 1, true
		}
		return 0, false
	}

	r, size := utf8.DecodeRune(rest)
	if unicode.IsSpace(r) {
		return size, true
	}
	return 0, false
}

// hasPrefix 判断 rest 是否以 marker 开头，大小写不敏感的语言按 ASCII 折叠比较。
func (m *machine) hasPrefix(rest []byte, marker []byte) bool {
	if len(rest) < len(marker) {
		return false
	}
	if m.fold {
		return bytes.EqualFold(rest[:len(marker)], marker)
	}
	return bytes.Equal(rest[:len(marker)], marker)
}

// wordEnds 判断关键字型标记之后是否为空白或行尾。
func wordEnds(after []byte) bool {
	if len(after) == 0 {
		return true
	}
	switch after[0] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
