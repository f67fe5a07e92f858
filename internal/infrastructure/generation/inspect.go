package generation

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"

	json "github.com/goccy/go-json"
)

// Report is the audit summary of an artifact: row totals, per-category
// counts and the word-alignment rate of the rows actually present.
type Report struct {
	Rows           int
	Unknown        int
	CategoryCounts map[movement.Category]int
	AlignmentRates map[movement.Category]float64
}

// DecodeSamples parses up to limit samples from an encoded artifact. A
// non-positive limit decodes everything.
func DecodeSamples(r io.Reader, format string, limit int) ([]corpus.Sample, error) {
	switch format {
	case datasets.FormatCSV:
		return decodeCSV(r, limit)
	case datasets.FormatJSONL:
		return decodeJSONL(r, limit)
	default:
		return nil, fmt.Errorf("unsupported artifact format: %q", format)
	}
}

func decodeCSV(r io.Reader, limit int) ([]corpus.Sample, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) != len(csvHeader) || header[0] != csvHeader[0] || header[1] != csvHeader[1] || header[2] != csvHeader[2] {
		return nil, fmt.Errorf("unexpected csv header: %v", header)
	}

	var samples []corpus.Sample
	for limit <= 0 || len(samples) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		samples = append(samples, corpus.Sample{
			Ticker:   record[0],
			Headline: record[1],
			Change:   record[2],
		})
	}
	return samples, nil
}

func decodeJSONL(r io.Reader, limit int) ([]corpus.Sample, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var samples []corpus.Sample
	for scanner.Scan() {
		if limit > 0 && len(samples) >= limit {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record jsonlRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal jsonl line: %w", err)
		}
		samples = append(samples, corpus.Sample{
			Ticker:   record.Ticker,
			Headline: record.News,
			Change:   record.Change,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan jsonl: %w", err)
	}
	return samples, nil
}

// Inspect decodes a whole artifact and audits it: total rows, per-category
// counts, rows with unknown labels, and the realized word-alignment rate per
// category.
func Inspect(r io.Reader, format string) (*Report, error) {
	samples, err := DecodeSamples(r, format, 0)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	report := &Report{
		Rows:           len(samples),
		CategoryCounts: make(map[movement.Category]int, 12),
		AlignmentRates: make(map[movement.Category]float64, 12),
	}

	aligned := make(map[movement.Category]int, 12)
	for _, sample := range samples {
		category, err := movement.ParseCategory(sample.Change)
		if err != nil {
			report.Unknown++
			continue
		}
		report.CategoryCounts[category]++
		if strings.Contains(sample.Headline, category.Keyword()) {
			aligned[category]++
		}
	}

	for category, count := range report.CategoryCounts {
		report.AlignmentRates[category] = float64(aligned[category]) / float64(count)
	}

	return report, nil
}
