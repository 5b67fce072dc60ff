package logutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"gofish/internal/config"
)

func TestDisabled(t *testing.T) {
	logger, closer, err := New(config.LogConfig{})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}
	defer closer.Close()
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("未配置文件时应禁用日志，级别 %v", logger.GetLevel())
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gofish.log")
	logger, closer, err := New(config.LogConfig{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}
	logger.Debug().Msg("hidden")
	logger.Info().Str("cmd", "ls").Msg("spawn")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志失败: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("低于 info 的日志不应输出: %q", out)
	}
	if !strings.Contains(out, "spawn") || !strings.Contains(out, "cmd=ls") {
		t.Errorf("日志内容不符: %q", out)
	}
}

func TestBadLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}); err == nil {
		t.Error("无效级别应返回错误")
	}
}

func TestNewWriterNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.DebugLevel)
	l.Debug().Msg("plain")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("不应包含颜色: %q", buf.String())
	}
}
