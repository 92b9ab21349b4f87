package models

// Row is one interview record as uploaded by the dashboard. Rows are
// dynamically shaped: the only structural requirement is a unique id field
// (configurable, `uniqueId` by default); any number of named free-text
// opinion columns may be present or absent per row.
type Row map[string]any

// BatchAnalysisRequest is the body of POST /extract-keywords-llm-batch.
type BatchAnalysisRequest struct {
	Data       []Row  `json:"data"`
	ColumnName string `json:"column_name" example:"(2) 성장/역량/커리어-구성원 의견"`
}

// InterviewDataRequest is the body of POST /analyze-transfer-intent.
type InterviewDataRequest struct {
	Data []Row `json:"data"`
}

// SuggestionRequest is the body of POST /generate-suggestion.
type SuggestionRequest struct {
	Text string `json:"text" example:"새로운 프로젝트를 리딩해보고 싶습니다."`
}
