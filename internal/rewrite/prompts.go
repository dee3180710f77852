package rewrite

import (
	"fmt"

	"newspress/internal/schedule"
)

// systemPrompt frames the model as a friendly financial news editor.
const systemPrompt = "당신은 경제 뉴스를 쉽고 친근하게 재작성하는 전문 에디터입니다."

// rewritePromptTemplate asks for a catchy title, a one-line summary, a
// three-paragraph body and an investment tip, returned as a JSON object.
const rewritePromptTemplate = `당신은 카카오페이, 토스 증권 앱에서 볼 수 있는 것처럼 경제 뉴스를 쉽고 친근하게 설명하는 전문가입니다.

[원본 제목]
%s

[원본 내용]
%s

[카테고리]
%s

다음 작업을 수행해주세요:

1. **클릭율이 높은 제목 작성**:
   - 호기심을 자극하는 제목
   - 이모지 1-2개 포함
   - 30자 내외
   - 핵심 키워드 포함

2. **한 줄 요약 작성**:
   - 기사의 핵심 내용을 1문장으로 압축
   - 50-80자 사이

3. **본문 재작성** - 3개 단락 구성 (총 800-1200자):

   **첫 번째 단락** (150-200자):
   - 이모지로 시작 (📢, 🔥, ⚡️ 등)
   - 무엇이 일어났는지 명확하게 설명
   - 5W1H 포함

   **두 번째 단락** (400-600자):
   - 이모지로 포인트 강조 (💡, 📊, 🎯 등)
   - 배경과 맥락 설명
   - 주요 인물/기업/숫자 등 구체적 정보
   - 전문 용어는 쉽게 풀어서 설명

   **세 번째 단락** (200-300자):
   - 이모지로 마무리 (🚀, 👀, ⏰ 등)
   - 왜 중요한지
   - 나/우리에게 미치는 영향
   - 앞으로의 전망이나 관전 포인트

   **작성 스타일:**
   - 20-30대가 이해하기 쉬운 언어
   - 문장은 짧고 명확하게 (한 문장 40자 이내)
   - 카카오톡 대화하듯 친근하게
   - 단락 구분은 \n\n (두 줄 띄우기)만 사용
   - [첫 단락: 핵심 요약] 같은 괄호 표기 절대 금지!

4. **투자 전략 팁** (100-150자):
   - 이 뉴스를 바탕으로 한 실질적인 투자 아이디어
   - "📊 투자 포인트:" 로 시작
   - 구체적이고 실행 가능한 조언
   - 리스크 언급 포함

응답은 반드시 JSON 형식으로만 작성해주세요:
{
  "title": "재작성된 제목",
  "summary": "한 줄 요약",
  "content": "재작성된 본문 (단락 구분은 \n\n 사용)",
  "investmentTip": "투자 전략 팁"
}`

// buildRewritePrompt fills the rewrite template.
func buildRewritePrompt(title, body string, category schedule.Category) string {
	return fmt.Sprintf(rewritePromptTemplate, title, body, category)
}
