package repository

import (
	"context"

	"StarChart/internal/domain/models"
	"StarChart/internal/domain/repository"
	pkgkafka "StarChart/pkg/kafka"
	"StarChart/pkg/util"
)

// KafkaSnapshotPublisher implements Publisher for Kafka. Snapshots are keyed
// by calendar day so replays land on the same partition.
type KafkaSnapshotPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSnapshotPublisher creates Kafka publisher.
func NewKafkaSnapshotPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaSnapshotPublisher{producer: producer, topic: topic}
}

func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, s *models.Snapshot) error {
	return p.producer.Publish(ctx, p.topic, []byte(util.DayKey(s.Date)), s)
}

func (p *KafkaSnapshotPublisher) PublishBatch(ctx context.Context, snapshots []*models.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(snapshots))
	for i, s := range snapshots {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(util.DayKey(s.Date)),
			Value: s,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSnapshotPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
