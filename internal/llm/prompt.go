package llm

import (
	"strings"
)

// TipsCategories lists the TIPS technology fields the model scores against.
var TipsCategories = []string{
	"AI·빅데이터",
	"시스템반도체 / 팹리스",
	"바이오·헬스케어",
	"미래모빌리티",
	"친환경·에너지",
	"로봇·자동화",
	"디지털헬스",
	"콘텐츠·플랫폼",
	"SaaS / B2B 솔루션",
	"딥테크 기타",
}

// maxPromptDocumentChars bounds the document excerpt to stay inside the
// model's context window.
const maxPromptDocumentChars = 15000

const analysisPromptHeader = `당신은 VC 심사역입니다.
제공된 스타트업 문서를 분석하여 TIPS 적합성을 평가해야 합니다.

## 평가 기준

### A. 기술성 (0~100점)
- 기술의 차별성: 기존 대비 혁신성, 특허/기술 우위
- 구현 가능성: TRL(Technology Readiness Level) 추정, 프로토타입/상용화 단계
- 모방 난이도: 진입장벽, 기술 복잡도
- 기술 설명의 구체성: 명확한 기술 설명, 검증 가능성

### B. 사업성 (0~100점)
- 문제 정의 명확성: 해결하려는 문제의 명확성과 시급성
- 시장 크기: TAM/SAM/SOM 추론, 시장 성장성
- BM 명확성: 비즈니스 모델의 명확성과 수익 구조
- 수익 구조 현실성: 수익화 전략의 현실성

### C. 팀 역량 (0~100점)
- 창업자 전문성: 관련 분야 경험, 기술/비즈니스 역량
- 기술-비즈니스 균형: 기술력과 사업화 역량의 균형
- 과거 성과/이력: 창업자/팀의 과거 성과
- 팀 구성 완성도: 필요한 역할의 보완도

### D. TIPS 적합성 (0~100점)
- 기술 기반 창업 여부: 기술 중심의 창업인지
- R&D 중심 성장 구조: R&D 투자와 성장 연계성
- 정부 R&D 과제 연계 가능성: 정부 지원 사업 연계 가능성
- TIPS 성공 가능성 종합 판단: TIPS 프로그램과의 적합도

## TIPS 기술 분야 분류
다음 분야 중 해당하는 분야를 선택하고 각 분야별 적합도 점수(0~100)를 부여하세요:
`

const analysisPromptFormat = `
## 출력 형식 (JSON)
반드시 유효한 JSON 형식으로만 응답하세요. 다른 텍스트나 설명 없이 JSON만 출력하세요.

{
  "companySummary": "기업을 5줄로 요약한 설명 (각 줄은 \n으로 구분)",
  "tipsCategories": [
    {"category": "AI·빅데이터", "score": 75},
    {"category": "SaaS / B2B 솔루션", "score": 60}
  ],
  "evaluations": {
    "technology": 75,
    "business": 65,
    "team": 70,
    "tipsFit": 68
  },
  "overallScore": 70,
  "recommendation": "추천",
  "strengths": ["강점1 (구체적으로)", "강점2 (구체적으로)", "강점3 (구체적으로)"],
  "risks": ["리스크1 (구체적으로)", "리스크2 (구체적으로)", "리스크3 (구체적으로)"],
  "comments": "심사역 관점의 종합 코멘트 (200-300자). 왜 그렇게 판단했는지, 보완 시 투자 검토 가능 포인트를 포함."
}

주의:
- 모든 점수는 0-100 사이의 정수여야 합니다.
- recommendation은 반드시 "추천", "보류", "비추천" 중 하나여야 합니다.
- tipsCategories는 해당하는 모든 분야를 포함하되, 점수가 0인 분야는 제외해도 됩니다.

## 분석 원칙
1. 객관적이고 현실적인 평가
2. 과도한 마케팅 표현 지양
3. 구체적이고 실무적인 코멘트
4. 보완 가능성도 함께 제시

다음 문서를 분석하세요:

`

// AnalysisPrompt builds the full evaluation prompt, truncating the document
// excerpt to the context budget.
func AnalysisPrompt(documentText string) string {
	doc := []rune(documentText)
	if len(doc) > maxPromptDocumentChars {
		doc = doc[:maxPromptDocumentChars]
	}

	var b strings.Builder
	b.WriteString(analysisPromptHeader)
	for _, cat := range TipsCategories {
		b.WriteString("- ")
		b.WriteString(cat)
		b.WriteString("\n")
	}
	b.WriteString(analysisPromptFormat)
	b.WriteString(string(doc))
	return b.String()
}

// SystemPrompt is the system role message sent alongside the prompt on
// providers that support one.
const SystemPrompt = "당신은 VC 심사역입니다. 제공된 JSON 형식으로만 응답하세요."
