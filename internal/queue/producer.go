package queue

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
)

// ThumbnailJob is the payload enqueued once per successful image upload.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

type Producer struct {
	writer *kafkago.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		Async:        false,
	}
	return &Producer{writer: w}
}

// Enqueue posts a thumbnail job keyed by file id, so redeliveries for
// the same file land on the same partition.
func (p *Producer) Enqueue(ctx context.Context, job ThumbnailJob) error {
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(job.FileID),
		Value: b,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
