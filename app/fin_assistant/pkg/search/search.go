package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	MaxResults int
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Abstract string `json:"abstract"`
	Source   string `json:"source"`
}

const (
	// NoAbstract 无法提取摘要时的占位文本
	NoAbstract = "暂无详细摘要"
	// SourceSystem 兜底结果的来源标记
	SourceSystem = "系统提示"
)
