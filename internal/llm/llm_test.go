package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(context.Context, string) (string, error) {
	return s.response, s.err
}

const wellFormedResponse = `{
  "companySummary": "요약입니다",
  "tipsCategories": [{"category": "AI·빅데이터", "score": 75}],
  "evaluations": {"technology": 75, "business": 65, "team": 70, "tipsFit": 68},
  "overallScore": 70,
  "recommendation": "추천",
  "strengths": ["강점1", "강점2", "강점3"],
  "risks": ["리스크1", "리스크2", "리스크3"],
  "comments": "종합 코멘트"
}`

func TestAnalyze(t *testing.T) {
	analyzer := NewAnalyzer(&stubProvider{response: wellFormedResponse}, nil)

	result := analyzer.Analyze(context.Background(), "문서 텍스트")

	assert.Equal(t, "요약입니다", result.CompanySummary)
	require.Len(t, result.TipsCategories, 1)
	assert.Equal(t, CategoryScore{Category: "AI·빅데이터", Score: 75}, result.TipsCategories[0])
	assert.Equal(t, Evaluations{Technology: 75, Business: 65, Team: 70, TipsFit: 68}, result.Evaluations)
	assert.Equal(t, 70, result.OverallScore)
	assert.Equal(t, RecommendInvest, result.Recommendation)
}

func TestAnalyzeRepairsFencedJSON(t *testing.T) {
	fenced := "```json\n" + wellFormedResponse + "\n```"
	analyzer := NewAnalyzer(&stubProvider{response: fenced}, nil)

	result := analyzer.Analyze(context.Background(), "문서 텍스트")
	assert.Equal(t, 70, result.OverallScore)
	assert.Equal(t, RecommendInvest, result.Recommendation)
}

func TestAnalyzeFallsBackToMock(t *testing.T) {
	t.Run("nil provider", func(t *testing.T) {
		analyzer := NewAnalyzer(nil, nil)
		result := analyzer.Analyze(context.Background(), "문서 텍스트")
		assert.Equal(t, MockResult(), result)
	})

	t.Run("provider error", func(t *testing.T) {
		analyzer := NewAnalyzer(&stubProvider{err: errors.New("timeout")}, nil)
		result := analyzer.Analyze(context.Background(), "문서 텍스트")
		assert.Equal(t, MockResult(), result)
	})
}

func TestMockResult(t *testing.T) {
	result := MockResult()

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, Evaluations{}, result.Evaluations)
	assert.Equal(t, RecommendHold, result.Recommendation)
	for _, cat := range result.TipsCategories {
		assert.Zero(t, cat.Score)
	}
	assert.NotEmpty(t, result.CompanySummary)
}

func TestAnalysisPrompt(t *testing.T) {
	prompt := AnalysisPrompt("스타트업 문서 본문")

	for _, cat := range TipsCategories {
		assert.Contains(t, prompt, cat)
	}
	assert.Contains(t, prompt, "스타트업 문서 본문")
	assert.Contains(t, prompt, `"recommendation"`)
}

func TestAnalysisPromptTruncation(t *testing.T) {
	doc := strings.Repeat("가", maxPromptDocumentChars+500)
	prompt := AnalysisPrompt(doc)

	runes := []rune(prompt)
	count := 0
	for _, r := range runes {
		if r == '가' {
			count++
		}
	}
	assert.Equal(t, maxPromptDocumentChars, count)
}
