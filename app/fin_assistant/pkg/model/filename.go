package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileNamePart 把公司名、年份等自由文本变成可放进文件名的片段：
// 路径分隔符替换为 "_"，开头的 "." 也替换为 "_"。
func FileNamePart(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, s)
	if trimmed := strings.TrimLeft(s, "."); len(trimmed) != len(s) {
		s = strings.Repeat("_", len(s)-len(trimmed)) + trimmed
	}
	if s == "" {
		return "_"
	}
	return s
}

// JoinUnder 拼接 dir 与 name，结果不在 dir 之下时返回错误
func JoinUnder(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.ContainsRune(rel, filepath.Separator) {
		return "", fmt.Errorf("file name %q escapes %s", name, dir)
	}
	return path, nil
}
