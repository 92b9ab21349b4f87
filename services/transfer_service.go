package services

import (
	"strings"

	"hr_interview_analysis/config"
	"hr_interview_analysis/models"
)

// AnalyzeTransferIntent partitions rows into transfer hopefuls and others by
// checking whether the configured opinion column contains any of the
// configured keywords. Matching is plain case-sensitive substring search, no
// tokenization. Rows missing the column or without a match land in others.
// Both returned slices are non-nil so they encode as JSON arrays.
func AnalyzeTransferIntent(cfg *config.Config, rows []models.Row) ([]models.Row, []models.Row) {
	hopefuls := make([]models.Row, 0)
	others := make([]models.Row, 0)

	for _, row := range rows {
		opinion, _ := row[cfg.TransferIntent.Column].(string)
		if opinion != "" && containsAny(opinion, cfg.TransferIntent.Keywords) {
			hopefuls = append(hopefuls, row)
		} else {
			others = append(others, row)
		}
	}

	return hopefuls, others
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
