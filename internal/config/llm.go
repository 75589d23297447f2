package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/aiden/pkg/log"
)

type LLMConfig struct {
	// Provider: "groq" or "custom" (any OpenAI-compatible endpoint)
	Provider string `env:"LLM_PROVIDER" envDefault:"groq"`
	Model    string `env:"LLM_MODEL" envDefault:"llama3-70b-8192"`

	GroqAPIKey string `env:"GROQ_API_KEY"`

	CustomBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}
