package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
)

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Model: "gpt-4o-mini"}, nil)
	assert.ErrorContains(t, err, "api_key")

	_, err = New(context.Background(), config.LLMConfig{APIKey: "sk-test"}, nil)
	assert.ErrorContains(t, err, "model")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validate(config.LLMConfig{APIKey: "sk-test", Model: "m"}))
}
