package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/nrehman/cart-service/internal/config"
)

// EnsureTopics creates the cart event topics if they do not exist yet.
func EnsureTopics(ctx context.Context, client *kgo.Client, cfg config.KafkaConfig) error {
	adm := kadm.NewClient(client)

	topics := []string{
		TopicCartUpdated,
		TopicPromoApplied,
		TopicPromoRejected,
	}

	for _, topic := range topics {
		resp, err := adm.CreateTopics(ctx, int32(cfg.TopicPartitions), cfg.ReplicationFactor, nil, topic)
		if err != nil {
			return fmt.Errorf("failed to create topic %s: %w", topic, err)
		}
		for _, detail := range resp {
			if detail.Err != nil && !strings.Contains(detail.Err.Error(), "already exists") {
				return fmt.Errorf("failed to create topic %s: %w", detail.Topic, detail.Err)
			}
		}
	}

	return nil
}
