package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/rs/zerolog"
)

const maxLineSize = 1024 * 1024

var ErrLineTooLong = errors.New("line exceeds maximum size")

type InputRecord struct {
	LineNumber int
	Event      models.RelayEvent
	Error      error
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll streams one record per non-blank JSONL line. A line longer than
// maxLineSize becomes a record carrying ErrLineTooLong and reading continues.
// The channel is closed at EOF, on a read error or when ctx is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		source := bufio.NewReaderSize(r.source, 64*1024)

		lineNumber := 0
		for {
			raw, tooLong, err := readLine(source, maxLineSize)
			if err == io.EOF {
				return
			}

			lineNumber++

			var record InputRecord
			switch {
			case err != nil:
				r.logger.Error().Err(err).Int("line", lineNumber).Msg("Failed to read input")
				record = InputRecord{LineNumber: lineNumber, Error: fmt.Errorf("line %d: %w", lineNumber, err)}
			case tooLong:
				r.logger.Warn().Int("line", lineNumber).Int("max_bytes", maxLineSize).Msg("Line too long")
				record = InputRecord{LineNumber: lineNumber, Error: fmt.Errorf("line %d: %w", lineNumber, ErrLineTooLong)}
			default:
				line := strings.TrimSpace(string(raw))
				if line == "" {
					continue
				}
				record = decodeLine(lineNumber, line)
			}

			select {
			case <-ctx.Done():
				return
			case out <- record:
			}

			if err != nil {
				return
			}
		}
	}()

	return out
}

func decodeLine(lineNumber int, line string) InputRecord {
	record := InputRecord{LineNumber: lineNumber}
	if err := json.Unmarshal([]byte(line), &record.Event); err != nil {
		record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
	} else if record.Event.RequestID == "" {
		record.Event.RequestID = fmt.Sprintf("line-%d", lineNumber)
	}

	return record
}

// readLine returns the next line without its terminator. Bytes past limit are
// discarded and tooLong is set.
func readLine(source *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := source.ReadLine()
		if err != nil {
			return line, tooLong, err
		}

		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		if !isPrefix {
			return line, tooLong, nil
		}
	}
}
