package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gofish/internal/highlight"
)

// maxPagerRows 补全列表最多显示的行数
const maxPagerRows = 8

// Render 重绘提示符、缓冲区、自动建议和补全列表
func (e *Editor) Render() {
	e.draw(false, "")
}

// renderFinal 重绘不带建议和补全列表的最终行并换行
func (e *Editor) renderFinal(suffix string) {
	e.draw(true, suffix)
}

func (e *Editor) draw(final bool, suffix string) {
	var b strings.Builder
	width := e.opts.Width()

	if e.renderRow > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", e.renderRow)
	}
	b.WriteString("\r\x1b[J")

	prompt := e.opts.Prompt()
	b.WriteString(crlf(prompt))
	b.WriteString(crlf(highlight.Render(e.buf, highlight.Highlight(e.buf, e.opts.Lookup))))

	plainPrompt := stripSGR(prompt)
	visible := plainPrompt + e.buf
	if final {
		b.WriteString(suffix)
		b.WriteString("\r\n")
		e.renderRow = 0
		e.write(b.String())
		return
	}

	if s, ok := e.Suggestion(); ok {
		tail := s[len(e.buf):]
		b.WriteString(highlight.Dim(crlf(tail)))
		visible += tail
	}
	endRow, endCol := layout(visible, width)
	if width > 0 && endCol == width {
		endCol = width - 1
	}

	rows := e.pagerRows(width)
	if e.search != nil {
		rows = append(rows, e.searchRow())
	}
	for _, row := range rows {
		b.WriteString("\r\n")
		b.WriteString(row)
		endRow++
	}

	curRow, curCol := layout(plainPrompt+e.buf[:e.cursor], width)
	if width > 0 && curCol == width {
		curRow, curCol = curRow+1, 0
	}
	if curRow > endRow {
		b.WriteString(strings.Repeat("\r\n", curRow-endRow))
		endRow = curRow
	}
	if up := endRow - curRow; up > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", up)
	}
	b.WriteString("\r")
	if curCol > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", curCol)
	}
	e.renderRow = curRow
	e.write(b.String())
}

func (e *Editor) write(s string) {
	if _, err := e.opts.Output.Write([]byte(s)); err != nil {
		e.logger.Debug().Err(err).Msg("render")
	}
}

// pagerRows 生成补全列表的显示行，保证选中项可见
func (e *Editor) pagerRows(width int) []string {
	p := e.st.Pager
	if !p.Active() {
		return nil
	}
	cands := p.Candidates()
	start := 0
	if sel := p.SelectedIndex(); sel >= maxPagerRows {
		start = sel - maxPagerRows + 1
	}
	end := start + maxPagerRows
	if end > len(cands) {
		end = len(cands)
	}

	var rows []string
	for i := start; i < end; i++ {
		c := cands[i]
		text := c.Display
		if c.Description != "" {
			text += "  (" + c.Description + ")"
		}
		text = truncate(text, width-1)
		if i == p.SelectedIndex() {
			rows = append(rows, "\x1b[7m"+text+"\x1b[0m")
		} else {
			rows = append(rows, text)
		}
	}
	if len(cands) > maxPagerRows {
		rows = append(rows, highlight.Dim(fmt.Sprintf("%d/%d", p.SelectedIndex()+1, len(cands))))
	}
	return rows
}

func (e *Editor) searchRow() string {
	status := "reverse-i-search"
	if e.search.failed {
		status = "failed " + status
	}
	return fmt.Sprintf("(%s)`%s'", status, e.search.query)
}

// layout 计算文本输出后光标所在的行和列
func layout(s string, width int) (row, col int) {
	for _, r := range s {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		if width > 0 && col == width {
			row++
			col = 0
		}
		col++
	}
	return row, col
}

// crlf 原始模式下换行需要回车
func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// stripSGR 去掉 CSI 序列，用于计算显示宽度
func stripSGR(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width])
}
