package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/engine"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

// ChartRequest 图表生成请求
type ChartRequest struct {
	DataSummary string `json:"data_summary"`
	ChartType   string `json:"chart_type"`
}

// ChartReply 图表生成结果，Text 与命令行输出一致
type ChartReply struct {
	*model.ChartResult
	Text string `json:"text"`
}

// SearchRequest 搜索请求
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchReply 搜索结果
type SearchReply struct {
	Results []search.Result `json:"results"`
	Text    string          `json:"text"`
}

// FinancialRequest 公司财报搜索请求
type FinancialRequest struct {
	Company string `json:"company"`
	Year    string `json:"year"`
}

// WorkbookRequest 工作簿导出请求
type WorkbookRequest struct {
	DataSummary string `json:"data_summary"`
}

// TextReply 只含可读文本的响应
type TextReply struct {
	Text string `json:"text"`
}

type handler struct {
	engine *engine.Engine
}

// invoke 经过中间件链执行 fn
func invoke[T any](ctx http.Context, operation string, fn func(context.Context, *T) (any, error)) error {
	var in T
	if err := ctx.Bind(&in); err != nil {
		return errors.BadRequest("INVALID_BODY", err.Error())
	}
	http.SetOperation(ctx, operation)
	h := ctx.Middleware(func(c context.Context, req any) (any, error) {
		return fn(c, req.(*T))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (h *handler) chart(ctx http.Context) error {
	return invoke(ctx, "/v1/charts", func(c context.Context, req *ChartRequest) (any, error) {
		if req.DataSummary == "" {
			return nil, errors.BadRequest("EMPTY_DATA_SUMMARY", "data_summary is required")
		}
		res, extracted := h.engine.RenderChart(c, req.DataSummary, req.ChartType)
		return &ChartReply{ChartResult: res, Text: engine.ChartMessage(res, extracted)}, nil
	})
}

func (h *handler) search(ctx http.Context) error {
	return invoke(ctx, "/v1/search", func(c context.Context, req *SearchRequest) (any, error) {
		if req.Query == "" {
			return nil, errors.BadRequest("EMPTY_QUERY", "query is required")
		}
		results := h.engine.Search(c, req.Query)
		return &SearchReply{Results: results, Text: h.engine.Format(results, req.Query)}, nil
	})
}

func (h *handler) financial(ctx http.Context) error {
	return invoke(ctx, "/v1/financial", func(c context.Context, req *FinancialRequest) (any, error) {
		if req.Company == "" {
			return nil, errors.BadRequest("EMPTY_COMPANY", "company is required")
		}
		return &TextReply{Text: h.engine.SearchFinancialInfo(c, req.Company, req.Year)}, nil
	})
}

func (h *handler) workbook(ctx http.Context) error {
	return invoke(ctx, "/v1/workbooks", func(c context.Context, req *WorkbookRequest) (any, error) {
		if req.DataSummary == "" {
			return nil, errors.BadRequest("EMPTY_DATA_SUMMARY", "data_summary is required")
		}
		return &TextReply{Text: h.engine.ExportWorkbook(c, req.DataSummary)}, nil
	})
}
