package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type Writer struct {
	out     io.Writer
	format  string
	encoder *json.Encoder
	summary Summary
	logger  *zerolog.Logger
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatSummary:
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: jsonl, summary)", format)
	}

	return &Writer{
		out:     out,
		format:  format,
		encoder: json.NewEncoder(out),
		logger:  logger,
	}, nil
}

// Write records one result. In summary format nothing is written until Close.
func (w *Writer) Write(result models.RelayResult) error {
	w.summary.Total++
	if result.Failed() {
		w.summary.Failed++
	} else {
		w.summary.Succeeded++
	}

	if w.format == FormatSummary {
		return nil
	}

	return w.encoder.Encode(result)
}

func (w *Writer) Summary() Summary {
	return w.summary
}

func (w *Writer) Close() error {
	w.logger.Info().
		Int("total", w.summary.Total).
		Int("succeeded", w.summary.Succeeded).
		Int("failed", w.summary.Failed).
		Msg("Batch writer closed")

	if w.format != FormatSummary {
		return nil
	}

	return w.encoder.Encode(w.summary)
}
