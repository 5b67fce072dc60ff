package history

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileStore 以文本记录追加写入历史文件
//
//	- cmd: git status
//	  when: 1700000000
type FileStore struct {
	path string
}

// NewFileStore 创建文件后端，必要时创建所在目录
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load 读取历史文件，文件不存在时返回空
// 不完整或格式错误的记录会被跳过
func (s *FileStore) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseRecords(data), nil
}

// Append 追加一条记录
func (s *FileStore) Append(e Entry) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(formatRecord(e)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Clear 清空历史文件
func (s *FileStore) Clear() error {
	err := os.Truncate(s.path, 0)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close 文件后端不持有句柄
func (s *FileStore) Close() error {
	return nil
}

func formatRecord(e Entry) string {
	return fmt.Sprintf("- cmd: %s\n  when: %d\n", escape(e.Command), e.Timestamp)
}

func parseRecords(data []byte) []Entry {
	var entries []Entry
	var pending *Entry

	flush := func() {
		if pending != nil {
			entries = append(entries, *pending)
			pending = nil
		}
	}

	// 末尾没有换行的行视为写了一半，丢弃
	if i := bytes.LastIndexByte(data, '\n'); i < len(data)-1 {
		data = data[:i+1]
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "- cmd: "):
			flush()
			cmd := unescape(strings.TrimPrefix(line, "- cmd: "))
			if cmd != "" {
				pending = &Entry{Command: cmd}
			}
		case strings.HasPrefix(line, "  when: "):
			if pending == nil {
				continue
			}
			ts, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "  when: ")), 10, 64)
			if err == nil {
				pending.Timestamp = ts
			}
		}
	}
	flush()
	return entries
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
