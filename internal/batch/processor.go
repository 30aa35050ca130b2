package batch

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
	"github.com/rs/zerolog"
)

// Asker is the part of relay.Service the processor needs.
type Asker interface {
	AskWithRetry(ctx context.Context, prompt *string) (string, error)
}

type Processor struct {
	asker   Asker
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(asker Asker, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		asker:   asker,
		workers: workers,
		logger:  logger,
	}
}

// Process relays records on a fixed worker pool. Results arrive in completion
// order; the channel closes once every record is handled or ctx is cancelled.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.RelayResult {
	jobs := make(chan InputRecord)
	results := make(chan models.RelayResult, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				result := p.handle(ctx, record)
				select {
				case <-ctx.Done():
					return
				case results <- result:
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case <-ctx.Done():
				return
			case jobs <- record:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) handle(ctx context.Context, record InputRecord) models.RelayResult {
	result := models.RelayResult{RequestID: record.Event.RequestID}

	if record.Error != nil {
		p.logger.Warn().Err(record.Error).Int("line", record.LineNumber).Msg("Skipping invalid record")
		result.Error = relay.ErrInvalidRequest.Error()
		return result
	}

	answer, err := p.asker.AskWithRetry(ctx, record.Event.Prompt)
	if err != nil {
		p.logger.Error().Err(err).Str("request_id", result.RequestID).Msg("Relay failed")
		result.Error = err.Error()
		return result
	}

	result.Response = answer
	return result
}
