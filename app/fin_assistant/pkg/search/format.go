package search

import (
	"fmt"
	"strings"
)

var financialKeywords = []string{"财务", "财报", "收入", "利润", "年报", "季度报告"}

// Fallback 搜索失败时返回的单条提示结果
func Fallback(query string) []Result {
	return []Result{{
		Title:    fmt.Sprintf("关于'%s'的搜索结果", query),
		Link:     "https://www.baidu.com",
		Abstract: fmt.Sprintf("由于网络或解析问题，无法获取'%s'的实时搜索结果。建议直接访问百度搜索查看最新信息。", query),
		Source:   SourceSystem,
	}}
}

// IsFallback 判断是否为兜底结果
func IsFallback(results []Result) bool {
	return len(results) == 1 && results[0].Source == SourceSystem
}

// Dedupe 按标题去重，保留首次出现的顺序，最多 limit 条（limit<=0 不限）
func Dedupe(results []Result, limit int) []Result {
	seen := make(map[string]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Title]; ok {
			continue
		}
		seen[r.Title] = struct{}{}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// IsFinancialQuery 查询中是否包含财报类关键词
func IsFinancialQuery(query string) bool {
	for _, kw := range financialKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

// Format 把结果整理为可读文本，最多展示 displayLimit 条
func Format(results []Result, query string, displayLimit int) string {
	if len(results) == 0 {
		return fmt.Sprintf("🔍🔍 未找到关于'%s'的相关结果", query)
	}
	if IsFallback(results) {
		return fmt.Sprintf("【搜索提示】: %s", results[0].Abstract)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "【百度搜索: %s】\n\n", query)

	if displayLimit > 0 && len(results) > displayLimit {
		results = results[:displayLimit]
	}
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. 📰 %s\n", i+1, r.Title)
		fmt.Fprintf(&sb, "   摘要: %s\n", r.Abstract)
		fmt.Fprintf(&sb, "   来源: %s\n\n", r.Source)
	}

	if IsFinancialQuery(query) {
		sb.WriteString("💡💡 财务信息提示: 以上信息来自公开搜索，请以公司官方公告为准")
	} else {
		sb.WriteString("💡💡 提示: 以上信息来自百度搜索，请谨慎参考其准确性")
	}
	return sb.String()
}
