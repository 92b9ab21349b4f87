package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hr_interview_analysis/config"
	"hr_interview_analysis/logger"
	"hr_interview_analysis/models"
	"hr_interview_analysis/utils"
)

// keywordTemperature matches the sampling temperature the dashboard was
// tuned against.
const keywordTemperature = 0.7

// Entry is one (id, text) pair selected from a row for analysis. Text is
// non-empty after trimming.
type Entry struct {
	ID   string
	Text string
}

// FilterEntries selects the rows whose column value is a non-empty string,
// preserving row order. Rows lacking the column, holding a non-string value,
// or blank after trimming are skipped silently: sparse columns are expected
// in this data. Rows without a usable id are skipped too, since they could
// never be keyed in the result.
func FilterEntries(rows []models.Row, idField, column string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		id, ok := row[idField].(string)
		if !ok || id == "" {
			continue
		}
		text, ok := row[column].(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		entries = append(entries, Entry{ID: id, Text: text})
	}
	return entries
}

// ChunkEntries partitions entries into groups of at most size, preserving
// order. Concatenating the chunks reproduces the input exactly; the last
// chunk may be short. Empty input yields no chunks.
func ChunkEntries(entries []Entry, size int) [][]Entry {
	if size <= 0 {
		size = 10
	}
	var chunks [][]Entry
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		chunks = append(chunks, entries[start:end])
	}
	return chunks
}

// ExtractKeywordsBatch turns one (row set, column) request into a complete
// ResultMap. Chunks are processed sequentially; a failing chunk never aborts
// the request, its ids just get empty keyword slices. Every filtered id ends
// up in the map exactly once.
func ExtractKeywordsBatch(ctx context.Context, cfg *config.Config, llm LLMClient, rows []models.Row, column string) models.ResultMap {
	entries := FilterEntries(rows, cfg.Analysis.IDField, column)
	finalResult := models.ResultMap{}
	if len(entries) == 0 {
		logger.Info("no analyzable entries in request", "column", column, "rows", len(rows))
		return finalResult
	}

	chunks := ChunkEntries(entries, cfg.Analysis.ChunkSize)
	logger.Info("starting batched keyword extraction",
		"column", column,
		"entries", len(entries),
		"chunks", len(chunks))

	systemPrompt := BuildKeywordSystemPrompt(column)

	for i, chunk := range chunks {
		parsed, err := extractChunkKeywords(ctx, llm, systemPrompt, chunk)
		if err != nil {
			// Isolate the failure: this chunk's ids fall back to empty
			// results, the remaining chunks still get processed.
			logger.Error("chunk processing failed, assigning empty results",
				"chunk", i+1,
				"chunks", len(chunks),
				"ids", chunkIDs(chunk),
				"error", err)
			for _, entry := range chunk {
				finalResult[entry.ID] = []models.KeywordItem{}
			}
			continue
		}

		mergeChunkResult(finalResult, chunk, parsed)
	}

	logger.Info("batched keyword extraction finished", "ids", len(finalResult))
	return finalResult
}

// extractChunkKeywords runs one chunk through the gateway and parses the
// response into an id-to-keywords mapping.
func extractChunkKeywords(ctx context.Context, llm LLMClient, systemPrompt string, chunk []Entry) (map[string][]models.KeywordItem, error) {
	content, err := llm.ChatCompletion(ctx, ChatRequest{
		System:      systemPrompt,
		User:        BuildKeywordUserPrompt(chunk),
		JSONMode:    true,
		Temperature: keywordTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chunk completion failed: %w", err)
	}

	// The model response is untrusted text: re-parse and shape-check it
	// before anything is merged.
	var parsed map[string][]models.KeywordItem
	if err := json.Unmarshal([]byte(utils.ExtractJSONFromText(content)), &parsed); err != nil {
		return nil, fmt.Errorf("chunk response parse failed: %w", err)
	}
	return parsed, nil
}

// mergeChunkResult copies the parsed keywords for this chunk's ids into the
// accumulating map. Ids partition across chunks, so later chunks cannot
// collide with earlier ones. The model occasionally invents ids or drops
// some; invented ids are logged and discarded, dropped ids get empty slices
// so the final map stays complete.
func mergeChunkResult(finalResult models.ResultMap, chunk []Entry, parsed map[string][]models.KeywordItem) {
	chunkSet := make(map[string]bool, len(chunk))
	for _, entry := range chunk {
		chunkSet[entry.ID] = true
	}

	var extraneous []string
	for id := range parsed {
		if !chunkSet[id] {
			extraneous = append(extraneous, id)
		}
	}
	if len(extraneous) > 0 {
		logger.Warn("model returned ids outside the chunk, discarding", "ids", extraneous)
	}

	for _, entry := range chunk {
		items := parsed[entry.ID]
		if items == nil {
			logger.Warn("model response missing id, assigning empty result", "id", entry.ID)
			items = []models.KeywordItem{}
		}
		finalResult[entry.ID] = items
	}
}

func chunkIDs(chunk []Entry) []string {
	ids := make([]string, 0, len(chunk))
	for _, entry := range chunk {
		ids = append(ids, entry.ID)
	}
	return ids
}
