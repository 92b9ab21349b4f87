package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"hr_interview_analysis/config"
	_ "hr_interview_analysis/docs" // swagger docs
	"hr_interview_analysis/logger"
	"hr_interview_analysis/models"
	"hr_interview_analysis/services"
	"hr_interview_analysis/utils"
)

const clientNotInitializedDetail = "OpenAI 클라이언트가 초기화되지 않았습니다."

// ExtractKeywordsBatchHandler godoc
// @Summary 면담 데이터 키워드 일괄 추출
// @Description 전체 데이터와 분석할 컬럼명을 받아, 10개씩 묶어 LLM으로 키워드를 추출하고 결과를 한 번에 반환합니다.
// @Tags 분석
// @Accept json
// @Produce json
// @Param payload body models.BatchAnalysisRequest true "면담 데이터와 분석 컬럼"
// @Success 200 {object} models.ResultMap "성공"
// @Failure 422 {object} models.ErrorResponse "잘못된 요청 본문"
// @Failure 500 {object} models.ErrorResponse "서버 오류"
// @Router /extract-keywords-llm-batch [post]
func ExtractKeywordsBatchHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config, llm services.LLMClient) {
	if llm == nil {
		utils.WriteDetail(w, http.StatusInternalServerError, clientNotInitializedDetail)
		return
	}

	var payload models.BatchAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if payload.ColumnName == "" {
		utils.WriteDetail(w, http.StatusUnprocessableEntity, "column_name is required")
		return
	}

	result := services.ExtractKeywordsBatch(r.Context(), cfg, llm, payload.Data, payload.ColumnName)
	utils.WriteJSON(w, http.StatusOK, result)
}

// AnalyzeTransferIntentHandler godoc
// @Summary 인사이동 희망 여부 분석
// @Description 구성원 의견에 인사이동 관련 키워드가 포함되어 있는지로 데이터를 두 그룹으로 나눕니다.
// @Tags 분석
// @Accept json
// @Produce json
// @Param payload body models.InterviewDataRequest true "면담 데이터"
// @Success 200 {object} models.TransferIntentResponse "성공"
// @Failure 422 {object} models.ErrorResponse "잘못된 요청 본문"
// @Failure 500 {object} models.ErrorResponse "서버 오류"
// @Router /analyze-transfer-intent [post]
func AnalyzeTransferIntentHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var payload models.InterviewDataRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	hopefuls, others := services.AnalyzeTransferIntent(cfg, payload.Data)
	utils.WriteJSON(w, http.StatusOK, models.TransferIntentResponse{
		TransferHopefuls: hopefuls,
		Others:           others,
	})
}

// GenerateSuggestionHandler godoc
// @Summary HR 추천안 생성
// @Description 구성원 의견 한 건에 대한 맞춤형 HR 추천안을 한 문장으로 생성합니다.
// @Tags 분석
// @Accept json
// @Produce json
// @Param payload body models.SuggestionRequest true "구성원 의견"
// @Success 200 {object} models.SuggestionResponse "성공"
// @Failure 422 {object} models.ErrorResponse "잘못된 요청 본문"
// @Failure 500 {object} models.ErrorResponse "서버 오류"
// @Failure 503 {object} models.ErrorResponse "외부 API 호출 실패"
// @Router /generate-suggestion [post]
func GenerateSuggestionHandler(w http.ResponseWriter, r *http.Request, llm services.LLMClient) {
	if llm == nil {
		utils.WriteDetail(w, http.StatusInternalServerError, clientNotInitializedDetail)
		return
	}

	var payload models.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	suggestion, err := services.GenerateSuggestion(r.Context(), llm, payload.Text)
	if err != nil {
		logger.Error("suggestion generation failed", "error", err)
		if errors.Is(err, services.ErrUpstream) {
			utils.WriteDetail(w, http.StatusServiceUnavailable, "OpenAI API 호출에 실패했습니다: "+err.Error())
			return
		}
		utils.WriteDetail(w, http.StatusInternalServerError, "추천안 생성 중 서버 오류 발생: "+err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.SuggestionResponse{Suggestion: suggestion})
}

// RootHandler godoc
// @Summary 서비스 상태 확인
// @Tags 상태
// @Produce json
// @Success 200 {object} models.MessageResponse "성공"
// @Router / [get]
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.MessageResponse{
		Message: "HR 면담 분석 API, 3개 엔드포인트 실행 중",
	})
}

// RegisterRoutes wires the analysis endpoints. llm may be nil when no API key
// was configured at startup; the LLM-backed endpoints then answer 500 while
// the rest of the service keeps working.
func RegisterRoutes(r *chi.Mux, cfg *config.Config, llm services.LLMClient) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", RootHandler)

	r.Post("/extract-keywords-llm-batch", func(w http.ResponseWriter, r *http.Request) {
		ExtractKeywordsBatchHandler(w, r, cfg, llm)
	})

	r.Post("/analyze-transfer-intent", func(w http.ResponseWriter, r *http.Request) {
		AnalyzeTransferIntentHandler(w, r, cfg)
	})

	r.Post("/generate-suggestion", func(w http.ResponseWriter, r *http.Request) {
		GenerateSuggestionHandler(w, r, llm)
	})
}
