package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Chart       ChartConfig       `yaml:"chart"`
	Search      SearchConfig      `yaml:"search"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Server      ServerConfig      `yaml:"server"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ChartConfig 图表渲染配置
type ChartConfig struct {
	OutputDir      string  `yaml:"output_dir"`
	SaveDPI        float64 `yaml:"save_dpi"`    // 落盘 PNG 的分辨率
	PreviewDPI     float64 `yaml:"preview_dpi"` // base64 副本的分辨率
	DefaultCompany string  `yaml:"default_company"`
	DefaultYear    string  `yaml:"default_year"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider     string        `yaml:"provider"` // baidu / searxng / tavily
	MaxResults   int           `yaml:"max_results"`
	DisplayLimit int           `yaml:"display_limit"`
	Baidu        BaiduConfig   `yaml:"baidu"`
	Tavily       TavilyConfig  `yaml:"tavily"`
	SearXNG      SearXNGConfig `yaml:"searxng"`
	Enrich       EnrichConfig  `yaml:"enrich"`
}

// BaiduConfig 百度网页搜索配置
type BaiduConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // 秒
	UserAgent string `yaml:"user_agent"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// EnrichConfig 摘要补全配置：对没有摘要的结果抓取原文
type EnrichConfig struct {
	Enabled     bool `yaml:"enabled"`
	MaxArticles int  `yaml:"max_articles"`
	Timeout     int  `yaml:"timeout"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LLMConfig LLM 相关配置，仅 assist 子命令使用
type LLMConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	MaxSteps int    `yaml:"max_steps"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Chart: ChartConfig{
			OutputDir:      "./charts",
			SaveDPI:        300,
			PreviewDPI:     150,
			DefaultCompany: "Test Company",
			DefaultYear:    "2023",
		},
		Search: SearchConfig{
			Provider:     "baidu",
			MaxResults:   8,
			DisplayLimit: 5,
			Baidu: BaiduConfig{
				BaseURL:   "https://www.baidu.com/s",
				Timeout:   15,
				UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
			SearXNG: SearXNGConfig{Timeout: 30},
			Enrich:  EnrichConfig{MaxArticles: 3, Timeout: 10},
		},
		Concurrency: ConcurrencyConfig{QPS: 1, RPM: 30},
		LLM:         LLMConfig{MaxSteps: 8},
		Server:      ServerConfig{Addr: "0.0.0.0:8000", Timeout: "60s"},
	}
}

// LoadConfig 从指定路径加载配置，未填写的字段保留默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 检查配置中的明显错误
func (c *Config) Validate() error {
	if c.Chart.OutputDir == "" {
		return fmt.Errorf("chart.output_dir is empty")
	}
	if c.Chart.SaveDPI <= 0 || c.Chart.PreviewDPI <= 0 {
		return fmt.Errorf("chart dpi must be positive")
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive")
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			return fmt.Errorf("server.timeout: %w", err)
		}
	}
	return nil
}

// BaiduTimeout 将秒数转换为 time.Duration，0 时使用 15 秒
func (c *SearchConfig) BaiduTimeout() time.Duration {
	if c.Baidu.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Baidu.Timeout) * time.Second
}
