package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/batch"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	input := flag.String("input", "", "Input JSONL file path ('-' for stdin)")
	output := flag.String("output", "", "Output file path (default stdout)")
	format := flag.String("format", batch.FormatJSONL, "Output format. Supported formats: 'jsonl', 'summary'")
	summary := flag.String("summary", "", "Optional separate summary file")
	workers := flag.Int("workers", 5, "Concurrent relay workers")
	continueOnError := flag.Bool("continue-on-error", true, "Continue on write failures")
	dryRun := flag.Bool("dry-run", false, "Validate input without calling the model")

	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}
	formatValidator(format)

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	reader := batch.NewReader(inputFile, &log.Logger)

	var records []batch.InputRecord
	for record := range reader.ReadAll(ctx) {
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Msg("Input file parsed")

	if *dryRun {
		dryRunAndExit(records)
	}

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("Writing to stdout")
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	writer, err := batch.NewWriter(outputFile, *format, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	processor := batch.NewProcessor(deps.Relay, *workers, deps.Logger)

	writeErrors := 0
	for result := range processor.Process(ctx, records) {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Str("request_id", result.RequestID).Msg("Failed to write result")
			writeErrors++

			if !*continueOnError {
				log.Fatal().Msg("Stopping due to write error")
			}
		}
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to finalize output")
	}

	stats := writer.Summary()
	log.Info().
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int("write_errors", writeErrors).
		Dur("duration", time.Since(startTime)).
		Msg("Processing complete")

	if *summary != "" {
		writeSummary(*summary, stats)
	}
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}

func formatValidator(format *string) {
	validFormats := map[string]bool{batch.FormatJSONL: true, batch.FormatSummary: true}
	if !validFormats[*format] {
		log.Fatal().
			Str("format", *format).
			Msg("Invalid format. Supported: jsonl, summary")
	}
}

func writeSummary(path string, stats batch.Summary) {
	summaryFile, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to create summary file")
	}
	defer summaryFile.Close()

	if err := json.NewEncoder(summaryFile).Encode(stats); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to write summary")
		return
	}
	log.Info().Str("file", path).Msg("Summary written")
}

func dryRunAndExit(records []batch.InputRecord) {
	errorCount := 0
	for _, record := range records {
		if record.Error != nil {
			log.Error().
				Int("line", record.LineNumber).
				Err(record.Error).
				Msg("Validation error")
			errorCount++
			continue
		}
		if record.Event.Prompt == nil {
			log.Error().
				Int("line", record.LineNumber).
				Msg("Validation error: prompt is required")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Validation failed")
	}

	log.Info().Int("records", len(records)).Msg("Dry run: all records valid")
	os.Exit(0)
}
