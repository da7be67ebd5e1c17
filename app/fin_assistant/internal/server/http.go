package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/engine"
)

// NewHTTPServer 创建 HTTP 服务，注册图表、搜索与导出接口，并托管图表输出目录
func NewHTTPServer(c config.ServerConfig, e *engine.Engine, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	h := &handler{engine: e}
	r := srv.Route("/v1")
	r.POST("/charts", h.chart)
	r.POST("/search", h.search)
	r.POST("/financial", h.financial)
	r.POST("/workbooks", h.workbook)

	// 已生成的图表与工作簿
	files := nethttp.FileServer(nethttp.Dir(e.Renderer().OutputDir()))
	srv.HandlePrefix("/charts/", nethttp.StripPrefix("/charts/", files))

	return srv
}
