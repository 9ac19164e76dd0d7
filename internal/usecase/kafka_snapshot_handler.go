package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"StarChart/internal/domain/models"
	domrepo "StarChart/internal/domain/repository"
	pkgkafka "StarChart/pkg/kafka"
)

// KafkaSnapshotHandler consumes snapshot messages and writes them to the
// archive. Malformed payloads fail fast so the consumer can route them to
// the DLQ instead of retrying forever.
type KafkaSnapshotHandler struct {
	topic   string
	archive domrepo.Archive
	metrics domrepo.Metrics
}

func NewKafkaSnapshotHandler(topic string, archive domrepo.Archive, metrics domrepo.Metrics) *KafkaSnapshotHandler {
	return &KafkaSnapshotHandler{topic: topic, archive: archive, metrics: metrics}
}

func (h *KafkaSnapshotHandler) Topic() string { return h.topic }

func (h *KafkaSnapshotHandler) Handle(ctx context.Context, b []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if snap.Date.IsZero() {
		h.metrics.RecordError("consumer_invalid")
		return fmt.Errorf("snapshot without date")
	}

	start := time.Now()
	err := h.archive.Store(ctx, &snap)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordSnapshot("clickhouse", "ok")
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaSnapshotHandler)(nil)
