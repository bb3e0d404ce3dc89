package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Processor handles one thumbnail job. A returned error marks the job
// failed; the message is still committed, so a failed job is not
// redelivered by us — redelivery only happens on consumer crash, which
// gives at-least-once semantics overall.
type Processor interface {
	Process(ctx context.Context, job ThumbnailJob) error
}

type Consumer struct {
	reader *kafkago.Reader
	logger *zap.SugaredLogger
}

func NewConsumer(brokers []string, topic, group string, logger *zap.SugaredLogger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{reader: r, logger: logger}
}

// Run drains the queue until ctx is cancelled, one job at a time.
func (c *Consumer) Run(ctx context.Context, p Processor) {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Errorf("kafka read: %v", err)
			time.Sleep(1 * time.Second)
			continue
		}

		var job ThumbnailJob
		if err := json.Unmarshal(m.Value, &job); err != nil {
			// malformed payload, retrying cannot help
			c.logger.Errorf("malformed thumbnail job at offset %d: %v", m.Offset, err)
			continue
		}
		if err := p.Process(ctx, job); err != nil {
			c.logger.Errorf("thumbnail job fileId=%s: %v", job.FileID, err)
			continue
		}
		c.logger.Infof("thumbnail job fileId=%s done", job.FileID)
	}
}

func (c *Consumer) Close() error { return c.reader.Close() }
