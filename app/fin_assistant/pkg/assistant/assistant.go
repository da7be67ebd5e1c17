// Package assistant 基于 ReAct agent 的财报助手，按问题自行调用图表、搜索与导出工具。
package assistant

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
)

const systemPrompt = `你是一名财务报告助手。
需要最新资讯或公司财报时，调用 search_market_info 或 search_financial_info 工具；
用户给出财务数据并需要可视化时，调用 generate_chart 工具；需要表格时调用 export_metrics_workbook 工具。
回答使用中文，引用搜索结果时注明以公司官方公告为准。`

// Assistant 财报问答 agent
type Assistant struct {
	agent *react.Agent
}

// New 创建助手。缺少 api_key 或 model 时返回错误。
func New(ctx context.Context, cfg config.LLMConfig, tools []tool.BaseTool) (*Assistant, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	maxStep := cfg.MaxSteps
	if maxStep <= 0 {
		maxStep = 8
	}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig:      compose.ToolsNodeConfig{Tools: tools},
		MaxStep:          maxStep,
	})
	if err != nil {
		return nil, fmt.Errorf("create react agent: %w", err)
	}

	return &Assistant{agent: agent}, nil
}

func validate(cfg config.LLMConfig) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("llm.api_key is missing")
	}
	if cfg.Model == "" {
		return fmt.Errorf("llm.model is missing")
	}
	return nil
}

// Ask 提问并返回最终回答
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	logger.Log.Infof("助手收到问题: %s", question)

	msg, err := a.agent.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(question),
	})
	if err != nil {
		return "", fmt.Errorf("agent generate: %w", err)
	}
	return msg.Content, nil
}
