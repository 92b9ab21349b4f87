package models

// KeywordItem is one keyword extracted by the upstream model. The score is
// whatever the model produced (nominally 0..1); only the structural shape is
// validated here, not the range.
type KeywordItem struct {
	Word  string  `json:"word" example:"성장"`
	Score float64 `json:"score" example:"0.91"`
}

// ResultMap maps every filtered row id to its extracted keywords. Ids whose
// chunk failed upstream carry an empty (never nil, so it encodes as []) slice.
type ResultMap map[string][]KeywordItem

// TransferIntentResponse is the body of POST /analyze-transfer-intent.
type TransferIntentResponse struct {
	TransferHopefuls []Row `json:"transfer_hopefuls"`
	Others           []Row `json:"others"`
}

// SuggestionResponse is the body of POST /generate-suggestion.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

// MessageResponse is the body of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human-readable failure description. The `detail`
// key matches what the dashboard already expects from the API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
