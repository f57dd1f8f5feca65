// Package llm scores a startup's document bundle with a generative model.
// The analyzer treats the model as an opaque collaborator: it sends the
// evaluation prompt, repairs the returned JSON, and falls back to a zeroed
// mock result whenever no provider is configured or a call fails.
package llm

import (
	"context"
	"encoding/json"
	"log/slog"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Recommendation values the model must choose from.
const (
	RecommendInvest = "추천"
	RecommendHold   = "보류"
	RecommendPass   = "비추천"
)

// CategoryScore is the model's fit score for one TIPS technology category.
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// Evaluations are the four 0-100 sub-scores.
type Evaluations struct {
	Technology int `json:"technology"`
	Business   int `json:"business"`
	Team       int `json:"team"`
	TipsFit    int `json:"tipsFit"`
}

// AnalysisResult is the fixed evaluation schema consumers render directly.
type AnalysisResult struct {
	CompanySummary string          `json:"companySummary"`
	TipsCategories []CategoryScore `json:"tipsCategories"`
	Evaluations    Evaluations     `json:"evaluations"`
	OverallScore   int             `json:"overallScore"`
	Recommendation string          `json:"recommendation"`
	Strengths      []string        `json:"strengths"`
	Risks          []string        `json:"risks"`
	Comments       string          `json:"comments"`
}

// Provider produces the raw model completion for an analysis prompt. The
// completion is expected to be JSON but is repaired before decoding, so
// providers may return markdown-fenced or mildly malformed output.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the document evaluation through a provider.
type Analyzer struct {
	provider Provider
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil provider is allowed and yields the
// mock result on every call.
func NewAnalyzer(provider Provider, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{provider: provider, logger: logger}
}

// Analyze scores the document text. It never returns an error: any provider
// or decode failure degrades to the mock result so callers always get a
// renderable record.
func (a *Analyzer) Analyze(ctx context.Context, documentText string) AnalysisResult {
	if a.provider == nil {
		a.logger.Warn("no llm provider configured, returning mock analysis")
		return MockResult()
	}

	prompt := AnalysisPrompt(documentText)
	raw, err := a.provider.Complete(ctx, prompt)
	if err != nil {
		a.logger.Error("llm analysis failed", "provider", a.provider.Name(), "error", err)
		return MockResult()
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		repaired = raw
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		a.logger.Error("llm response decode failed",
			"provider", a.provider.Name(), "error", err, "raw_len", len(raw))
		return MockResult()
	}

	a.logger.Info("llm analysis complete",
		"provider", a.provider.Name(),
		"overall_score", result.OverallScore,
		"recommendation", result.Recommendation)
	return result
}

// MockResult is returned when no model is reachable. Scores are zero and the
// placeholder text tells the operator how to enable real analysis.
func MockResult() AnalysisResult {
	return AnalysisResult{
		CompanySummary: "문서 분석을 위해 LLM API 키를 설정해주세요. .env 파일에 OPENAI_API_KEY 또는 GEMINI_API_KEY를 추가하세요.",
		TipsCategories: []CategoryScore{
			{Category: "AI·빅데이터", Score: 0},
			{Category: "시스템반도체 / 팹리스", Score: 0},
		},
		Evaluations:    Evaluations{},
		OverallScore:   0,
		Recommendation: RecommendHold,
		Strengths:      []string{"API 키 설정 필요"},
		Risks:          []string{"LLM 서비스 미연결"},
		Comments:       "LLM API 키를 설정하면 실제 분석이 가능합니다.",
	}
}
