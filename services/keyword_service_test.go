package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"hr_interview_analysis/config"
	"hr_interview_analysis/models"
)

type scriptedResponse struct {
	content string
	err     error
}

// scriptedLLM answers one scripted response per call, in order, and records
// every request it received.
type scriptedLLM struct {
	responses []scriptedResponse
	calls     []ChatRequest
}

func (s *scriptedLLM) ChatCompletion(_ context.Context, req ChatRequest) (string, error) {
	s.calls = append(s.calls, req)
	idx := len(s.calls) - 1
	if idx >= len(s.responses) {
		return "", errors.New("unexpected extra call")
	}
	return s.responses[idx].content, s.responses[idx].err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Analysis.ChunkSize = 10
	cfg.Analysis.IDField = "uniqueId"
	return cfg
}

func makeRows(n int, column string) []models.Row {
	rows := make([]models.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.Row{
			"uniqueId": fmt.Sprintf("row_%d", i),
			column:     fmt.Sprintf("의견 %d", i),
		})
	}
	return rows
}

// keywordJSON builds a valid model response covering the given ids.
func keywordJSON(t *testing.T, ids []string) string {
	t.Helper()
	result := make(map[string][]models.KeywordItem, len(ids))
	for _, id := range ids {
		result[id] = []models.KeywordItem{{Word: "성장", Score: 0.9}}
	}
	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal scripted response: %v", err)
	}
	return string(b)
}

func TestFilterEntries(t *testing.T) {
	rows := []models.Row{
		{"uniqueId": "row_0", "opinion": "growth"},
		{"uniqueId": "row_1", "opinion": ""},
		{"uniqueId": "row_2", "opinion": "   "},
		{"uniqueId": "row_3"},
		{"uniqueId": "row_4", "opinion": 42},
		{"opinion": "no id field"},
		{"uniqueId": 7, "opinion": "non-string id"},
		{"uniqueId": "row_5", "opinion": "leadership"},
	}

	entries := FilterEntries(rows, "uniqueId", "opinion")

	expected := []Entry{
		{ID: "row_0", Text: "growth"},
		{ID: "row_5", Text: "leadership"},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	// pure: a second run over the same input is identical
	again := FilterEntries(rows, "uniqueId", "opinion")
	if !reflect.DeepEqual(entries, again) {
		t.Fatalf("filter is not deterministic: %+v vs %+v", entries, again)
	}
}

func TestChunkEntriesPartition(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 30} {
		entries := make([]Entry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, Entry{ID: fmt.Sprintf("row_%d", i), Text: "x"})
		}

		chunks := ChunkEntries(entries, 10)

		wantChunks := (n + 9) / 10
		if len(chunks) != wantChunks {
			t.Fatalf("n=%d: expected %d chunks, got %d", n, wantChunks, len(chunks))
		}

		var flat []Entry
		for _, chunk := range chunks {
			if len(chunk) == 0 || len(chunk) > 10 {
				t.Fatalf("n=%d: chunk size %d out of bounds", n, len(chunk))
			}
			flat = append(flat, chunk...)
		}
		if n == 0 {
			if flat != nil {
				t.Fatalf("expected no chunks for empty input")
			}
			continue
		}
		if !reflect.DeepEqual(flat, entries) {
			t.Fatalf("n=%d: concatenated chunks do not reproduce input", n)
		}
	}
}

func TestChunkEntriesShortLastChunk(t *testing.T) {
	entries := make([]Entry, 25)
	chunks := ChunkEntries(entries, 10)
	if len(chunks) != 3 || len(chunks[0]) != 10 || len(chunks[1]) != 10 || len(chunks[2]) != 5 {
		t.Fatalf("expected chunks of 10,10,5, got %d chunks", len(chunks))
	}
}

func TestExtractKeywordsBatchEmptyInput(t *testing.T) {
	llm := &scriptedLLM{}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, nil, "opinion")

	if len(result) != 0 {
		t.Fatalf("expected empty result map, got %v", result)
	}
	if len(llm.calls) != 0 {
		t.Fatalf("expected zero gateway calls, got %d", len(llm.calls))
	}
}

func TestExtractKeywordsBatchSingleChunk(t *testing.T) {
	rows := []models.Row{
		{"uniqueId": "row_0", "opinion": "growth"},
		{"uniqueId": "row_1", "opinion": ""},
		{"uniqueId": "row_2", "opinion": "leadership"},
	}
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: keywordJSON(t, []string{"row_0", "row_2"})},
	}}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, rows, "opinion")

	if len(llm.calls) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(llm.calls))
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 ids in result, got %d", len(result))
	}
	if len(result["row_0"]) == 0 || len(result["row_2"]) == 0 {
		t.Fatalf("expected keywords for both filtered ids: %v", result)
	}
	if _, ok := result["row_1"]; ok {
		t.Fatalf("filtered-out row must not appear in result")
	}

	call := llm.calls[0]
	if !call.JSONMode {
		t.Fatalf("expected JSON-object output to be requested")
	}
	if call.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", call.Temperature)
	}
	if !strings.Contains(call.User, "--- ID: row_0 ---\ngrowth") {
		t.Fatalf("user payload missing labeled block: %s", call.User)
	}
	if !strings.Contains(call.System, "opinion") {
		t.Fatalf("system prompt missing column name")
	}
}

func TestExtractKeywordsBatchSequentialChunks(t *testing.T) {
	llm := &scriptedLLM{}
	var allIDs []string
	for i := 0; i < 25; i++ {
		allIDs = append(allIDs, fmt.Sprintf("row_%d", i))
	}
	llm.responses = []scriptedResponse{
		{content: keywordJSON(t, allIDs[:10])},
		{content: keywordJSON(t, allIDs[10:20])},
		{content: keywordJSON(t, allIDs[20:])},
	}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, makeRows(25, "opinion"), "opinion")

	if len(llm.calls) != 3 {
		t.Fatalf("expected 3 gateway calls, got %d", len(llm.calls))
	}
	if len(result) != 25 {
		t.Fatalf("expected 25 ids in result, got %d", len(result))
	}
	for _, id := range allIDs {
		if len(result[id]) == 0 {
			t.Fatalf("expected keywords for %s", id)
		}
	}
}

func TestExtractKeywordsBatchFaultIsolation(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: keywordJSON(t, []string{
			"row_0", "row_1", "row_2", "row_3", "row_4",
			"row_5", "row_6", "row_7", "row_8", "row_9",
		})},
		{err: fmt.Errorf("%w: status 429", ErrUpstream)},
	}}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, makeRows(15, "opinion"), "opinion")

	if len(result) != 15 {
		t.Fatalf("expected all 15 ids present, got %d", len(result))
	}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("row_%d", i)
		if len(result[id]) == 0 {
			t.Fatalf("first chunk id %s lost its keywords", id)
		}
	}
	for i := 10; i < 15; i++ {
		id := fmt.Sprintf("row_%d", i)
		items, ok := result[id]
		if !ok {
			t.Fatalf("failed chunk id %s missing from result", id)
		}
		if items == nil || len(items) != 0 {
			t.Fatalf("failed chunk id %s must carry an empty slice, got %v", id, items)
		}
	}
}

func TestExtractKeywordsBatchMalformedResponse(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: "죄송합니다, JSON을 생성할 수 없습니다."},
	}}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, makeRows(3, "opinion"), "opinion")

	if len(result) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(result))
	}
	for id, items := range result {
		if len(items) != 0 {
			t.Fatalf("expected empty fallback for %s, got %v", id, items)
		}
	}
}

func TestExtractKeywordsBatchRejectsExtraneousIDs(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: keywordJSON(t, []string{"row_0", "row_1", "made_up_id"})},
	}}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, makeRows(3, "opinion"), "opinion")

	if _, ok := result["made_up_id"]; ok {
		t.Fatalf("extraneous id leaked into result map")
	}
	if len(result) != 3 {
		t.Fatalf("expected exactly the 3 filtered ids, got %d", len(result))
	}
	// row_2 was absent from the model response but must still be present
	items, ok := result["row_2"]
	if !ok || items == nil || len(items) != 0 {
		t.Fatalf("id dropped by the model must get an empty slice, got %v (present=%v)", items, ok)
	}
}

func TestExtractKeywordsBatchResultMarshalsEmptyAsArray(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{
		{err: fmt.Errorf("%w: boom", ErrUpstream)},
	}}

	result := ExtractKeywordsBatch(context.Background(), testConfig(), llm, makeRows(1, "opinion"), "opinion")

	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if string(b) != `{"row_0":[]}` {
		t.Fatalf("fallback must encode as [], got %s", b)
	}
}
