// Package config 读取 gofish 的 YAML 配置文件
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gofish/pkg/platform"
)

// Config gofish 配置
type Config struct {
	History       HistoryConfig     `yaml:"history"`
	Editor        EditorConfig      `yaml:"editor"`
	Completion    CompletionConfig  `yaml:"completion"`
	Abbreviations map[string]string `yaml:"abbreviations"`
	Log           LogConfig         `yaml:"log"`
}

// HistoryConfig 历史记录设置
type HistoryConfig struct {
	File    string `yaml:"file"`
	MaxSize int    `yaml:"max_size"`
	Backend string `yaml:"backend"` // file 或 bolt
}

// EditorConfig 行编辑器设置
type EditorConfig struct {
	Mode         string `yaml:"mode"` // raw、readline 或 simple
	PollInterval string `yaml:"poll_interval"`
}

// CompletionConfig 补全设置
type CompletionConfig struct {
	CacheDir string `yaml:"cache_dir"`
	ManPages bool   `yaml:"man_pages"`
}

// LogConfig 调试日志设置，File 为空时不记录
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// 编辑器模式
const (
	ModeRaw      = "raw"
	ModeReadline = "readline"
	ModeSimple   = "simple"
)

// 历史后端
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// DefaultPollInterval 等待输入的超时
const DefaultPollInterval = 100 * time.Millisecond

// PollIntervalDuration 解析配置的超时，无效时返回默认值
func (e *EditorConfig) PollIntervalDuration() time.Duration {
	if e.PollInterval != "" {
		d, err := time.ParseDuration(e.PollInterval)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultPollInterval
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	data := dataDir()
	return &Config{
		History: HistoryConfig{
			File:    filepath.Join(data, "gofish_history"),
			MaxSize: 1000,
			Backend: BackendFile,
		},
		Editor: EditorConfig{
			Mode:         ModeRaw,
			PollInterval: DefaultPollInterval.String(),
		},
		Completion: CompletionConfig{
			CacheDir: filepath.Join(cacheDir(), "flags"),
			ManPages: true,
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// Load 从标准位置读取配置，文件不存在时返回默认配置
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom 从指定路径读取配置
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	home := platform.HomeDir()
	cfg.History.File = platform.ExpandHome(cfg.History.File, home)
	cfg.Completion.CacheDir = platform.ExpandHome(cfg.Completion.CacheDir, home)
	cfg.Log.File = platform.ExpandHome(cfg.Log.File, home)
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Editor.Mode {
	case ModeRaw, ModeReadline, ModeSimple:
	default:
		return fmt.Errorf("unknown editor mode %q", c.Editor.Mode)
	}
	switch c.History.Backend {
	case BackendFile, BackendBolt:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	return nil
}

// Path 返回标准配置文件路径
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gofish", "config.yaml")
	}
	return filepath.Join(platform.HomeDir(), ".config", "gofish", "config.yaml")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gofish")
	}
	return filepath.Join(platform.HomeDir(), ".local", "share", "gofish")
}

func cacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "gofish")
	}
	return filepath.Join(platform.HomeDir(), ".cache", "gofish")
}
