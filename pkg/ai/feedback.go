// Package ai produces structured cover letter reviews through an LLM.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"job-tracker-backend/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const systemPrompt = "You are an experienced hiring manager and career coach."

const reviewPrompt = `Review the cover letter below against the candidate's resume and the job description.

Rules:
- Give constructive, specific feedback. Do not rewrite the letter.
- Use only what the documents contain. Never invent experience.
- When a section has nothing meaningful to say, return an empty array for it.

Look at how well the letter matches the job, whether it carries the resume's strongest points,
which connections are missing or weak, and its clarity and tone.

Each entry in "strengths", "gaps" and "suggestions" is one or two sentences that point at
concrete parts of the documents. "tone_feedback" is two or three sentences on professionalism,
confidence, enthusiasm and clarity.

Answer with JSON only, shaped exactly like:
{"strengths": [string], "gaps": [string], "suggestions": [string], "tone_feedback": string}

RESUME:
"""%s"""

JOB DESCRIPTION:
"""%s"""

COVER LETTER:
"""%s"""
`

const temperature = 0.3

// Generator implements domain.FeedbackGenerator on any langchaingo model.
type Generator struct {
	model llms.Model
}

func NewGenerator(model llms.Model) *Generator {
	return &Generator{model: model}
}

// NewOpenAIGenerator builds a generator backed by the OpenAI chat API.
func NewOpenAIGenerator(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewGenerator(llm), nil
}

func (g *Generator) Generate(ctx context.Context, resume, job, coverLetter string) (*domain.Feedback, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, fmt.Sprintf(reviewPrompt, resume, job, coverLetter)),
	}

	resp, err := g.model.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("generate feedback: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, errors.New("generate feedback: empty response")
	}
	return parseFeedback(resp.Choices[0].Content)
}

// parseFeedback decodes the model answer, tolerating a markdown code fence.
func parseFeedback(raw string) (*domain.Feedback, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var fb domain.Feedback
	if err := json.Unmarshal([]byte(text), &fb); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	if fb.Strengths == nil {
		fb.Strengths = []string{}
	}
	if fb.Gaps == nil {
		fb.Gaps = []string{}
	}
	if fb.Suggestions == nil {
		fb.Suggestions = []string{}
	}
	return &fb, nil
}
