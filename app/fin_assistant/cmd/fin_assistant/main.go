package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-kratos/kratos/v2"
	klog "github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/internal/server"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/assistant"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/engine"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/tools"
)

const defaultConf = "configs/config.yaml"

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "fin_assistant"
	// Version 版本号
	Version string

	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", defaultConf, "config path, eg: -conf config.yaml")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `用法: %s [-conf path] <command> [args]

命令:
  chart [-type bar|line|pie|dashboard] <数据摘要>   生成财务图表
  search <关键词>                                  搜索市场信息
  financial [-year 2023] <公司>                    搜索公司财报
  export <数据摘要>                                导出指标工作簿
  serve                                            启动 HTTP 服务
  assist <问题>                                    由 agent 回答问题
`, Name)
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(flagconf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置文件: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化日志: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Log.Errorf("%s 执行失败: %v", flag.Arg(0), err)
		os.Exit(1)
	}
}

// loadConfig 读取配置；默认路径不存在时使用内置默认值
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) && path == defaultConf {
		return config.Default(), nil
	}
	return cfg, err
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	switch cmd {
	case "chart":
		fs := flag.NewFlagSet("chart", flag.ExitOnError)
		chartType := fs.String("type", "bar", "chart type: bar / line / pie / dashboard")
		_ = fs.Parse(args)
		summary, err := joinArgs(fs.Args(), "数据摘要")
		if err != nil {
			return err
		}
		fmt.Println(eng.GenerateChart(ctx, summary, *chartType))

	case "search":
		query, err := joinArgs(args, "关键词")
		if err != nil {
			return err
		}
		fmt.Println(<-eng.SearchAsync(ctx, query))

	case "financial":
		fs := flag.NewFlagSet("financial", flag.ExitOnError)
		year := fs.String("year", "", "report year, eg: 2023")
		_ = fs.Parse(args)
		company, err := joinArgs(fs.Args(), "公司")
		if err != nil {
			return err
		}
		fmt.Println(eng.SearchFinancialInfo(ctx, company, *year))

	case "export":
		summary, err := joinArgs(args, "数据摘要")
		if err != nil {
			return err
		}
		fmt.Println(eng.ExportWorkbook(ctx, summary))

	case "serve":
		return serve(ctx, cfg, eng)

	case "assist":
		question, err := joinArgs(args, "问题")
		if err != nil {
			return err
		}
		ts, err := tools.New(eng)
		if err != nil {
			return err
		}
		a, err := assistant.New(ctx, cfg.LLM, ts)
		if err != nil {
			return err
		}
		answer, err := a.Ask(ctx, question)
		if err != nil {
			return err
		}
		fmt.Println(answer)

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func joinArgs(args []string, what string) (string, error) {
	s := strings.TrimSpace(strings.Join(args, " "))
	if s == "" {
		return "", fmt.Errorf("缺少参数: %s", what)
	}
	return s, nil
}

func serve(ctx context.Context, cfg *config.Config, eng *engine.Engine) error {
	kl := klog.With(klog.NewStdLogger(os.Stdout),
		"ts", klog.DefaultTimestamp,
		"caller", klog.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	hs := server.NewHTTPServer(cfg.Server, eng, kl)
	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Context(ctx),
		kratos.Logger(kl),
		kratos.Server(hs),
	)
	logger.Log.Infof("HTTP 服务监听 %s，图表目录 %s", cfg.Server.Addr, eng.Renderer().OutputDir())
	return app.Run()
}
