package generation

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"

	json "github.com/goccy/go-json"
)

// csvHeader is the artifact column set.
var csvHeader = []string{"ticker", "news", "change"}

// jsonlRecord is the wire shape of one sample in jsonl artifacts.
type jsonlRecord struct {
	Ticker string `json:"ticker"`
	News   string `json:"news"`
	Change string `json:"change"`
}

// Encoder serializes samples into an artifact format.
type Encoder interface {
	// Encode writes all samples to w.
	Encode(w io.Writer, samples []corpus.Sample) error
	// ContentType returns the MIME type of the encoded artifact.
	ContentType() string
	// Ext returns the artifact file extension without the dot.
	Ext() string
}

// EncoderFor returns the encoder for an artifact format.
func EncoderFor(format string) (Encoder, error) {
	switch format {
	case datasets.FormatCSV:
		return &CSVEncoder{}, nil
	case datasets.FormatJSONL:
		return &JSONLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported artifact format: %q", format)
	}
}

// CSVEncoder writes samples as CSV with a ticker,news,change header.
type CSVEncoder struct{}

// Encode writes the header and one row per sample.
func (e *CSVEncoder) Encode(w io.Writer, samples []corpus.Sample) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, sample := range samples {
		if err := writer.Write([]string{sample.Ticker, sample.Headline, sample.Change}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for CSV artifacts.
func (e *CSVEncoder) ContentType() string { return "text/csv" }

// Ext returns the CSV file extension.
func (e *CSVEncoder) Ext() string { return "csv" }

// JSONLEncoder writes samples as newline-delimited JSON objects.
type JSONLEncoder struct{}

// Encode writes one JSON object per line.
func (e *JSONLEncoder) Encode(w io.Writer, samples []corpus.Sample) error {
	buffered := bufio.NewWriter(w)

	for _, sample := range samples {
		line, err := json.Marshal(jsonlRecord{
			Ticker: sample.Ticker,
			News:   sample.Headline,
			Change: sample.Change,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal sample: %w", err)
		}
		if _, err := buffered.Write(line); err != nil {
			return fmt.Errorf("failed to write jsonl line: %w", err)
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write jsonl newline: %w", err)
		}
	}

	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush jsonl: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for jsonl artifacts.
func (e *JSONLEncoder) ContentType() string { return "application/x-ndjson" }

// Ext returns the jsonl file extension.
func (e *JSONLEncoder) Ext() string { return "jsonl" }
