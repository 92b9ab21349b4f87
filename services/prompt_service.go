package services

import (
	"fmt"
	"strings"
)

// The instruction templates below are fixed: only the column name (keyword
// extraction) and the member opinion (suggestion) vary per request. Keeping
// the instruction separate from the data payload keeps prompts stable and
// auditable regardless of input size.

const keywordSystemPromptTemplate = `
당신은 SK엔무브의 HR 데이터 분석 전문가입니다.
아래에 제시된 각 구성원의 의견(` + "`%s`" + `)에서 핵심 키워드를 각각 추출하세요.
키워드는 해당 구성원의 핵심적인 의견, 요구사항을 나타내야 합니다.
반드시 아래 요청된 JSON 형식으로만 응답해야 하며, 다른 설명은 포함하지 마세요.

- 각 키워드는 'word'와 'score'를 키로 갖는 객체여야 합니다.
- 최종 결과는 각 'ID'를 키로 하고, 키워드 객체 배열을 값으로 하는 JSON 객체여야 합니다.

[응답 형식 예시]
{
  "row_0": [ {"word": "성장", "score": 0.91}, {"word": "프로젝트", "score": 0.85} ],
  "row_1": [ {"word": "리더십", "score": 0.87}, {"word": "소통", "score": 0.82} ],
  "row_2": [ {"word": "보상", "score": 0.95} ]
}
`

const suggestionSystemPrompt = `
당신은 SK엔무브(SK enmove)의 HR 전문 컨설턴트입니다. 당신의 역할은 구성원의 의견을 분석하여, HR 담당자가 즉시 실행할 수 있는 구체적인 개선 방안을 제안하는 것입니다.
제안은 반드시 아래에 명시된 'SK엔무브 구성원 성장지원 프로그램'을 기반으로 해야 합니다.
--- SK엔무브 구성원 성장지원 프로그램 ---
1. 일을 통한 성장 (경험)
   - 자기 주도적 Career 설계 및 실행 지원
   - TF 등을 통한 필요한 전문성의 자유로운 활용/육성
2. 역할을 통한 성장
   - 리더로 성장을 위한 선제적이고 체계적인 육성 프로그램 참여
   - 리더십 개발 및 조직개발 프로그램 지원
3. 학습을 통한 성장
   - 미래 필요 역량 및 공통역량 강화 지원
   - 중장기 Biz 수행 역량 개발 및 전문성 강화 지원 (연수 프로그램 등)
   - Global 역량 개발 지원
4. 역량 발휘 환경 지원
   - 구성원 Mental Care (구성원 심리 상담, Newcomer Counseling 등)
   - 구성원 Physical Care (사내 헬스 트레이닝 지원 등)
---
지시사항: 아래 구성원의 의견을 바탕으로, 위 프로그램 중 가장 적합한 해결책을 찾아 구체적인 실행 방안을 **한국어 한 문장**으로 제안하세요.
출력 예시: "새로운 프로젝트 리딩 경험을 쌓고 싶다는 의견에 따라, 유관 부서의 신규 TF에 참여하여 전문성을 활용하고 리더십을 키울 기회를 제공하는 것을 고려해볼 수 있겠습니다."
`

// BuildKeywordSystemPrompt renders the fixed extraction instruction for one
// analysis column.
func BuildKeywordSystemPrompt(column string) string {
	return fmt.Sprintf(keywordSystemPromptTemplate, column)
}

// BuildKeywordUserPrompt serializes a chunk of entries into labeled blocks,
// preserving chunk order.
func BuildKeywordUserPrompt(chunk []Entry) string {
	blocks := make([]string, 0, len(chunk))
	for _, entry := range chunk {
		blocks = append(blocks, fmt.Sprintf("--- ID: %s ---\n%s", entry.ID, entry.Text))
	}
	return strings.Join(blocks, "\n\n")
}

// BuildSuggestionSystemPrompt returns the fixed policy-catalog instruction
// for suggestion generation.
func BuildSuggestionSystemPrompt() string {
	return suggestionSystemPrompt
}

// BuildSuggestionUserPrompt wraps one member opinion for the suggestion call.
func BuildSuggestionUserPrompt(text string) string {
	return fmt.Sprintf("다음 SK엔무브 구성원의 의견에 대한 맞춤형 HR 추천안을 지시사항에 맞게 한 문장으로 만들어주세요:\n\n%s", text)
}
