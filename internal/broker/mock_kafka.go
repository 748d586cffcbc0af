package appkafka

import (
	"context"
	"encoding/json"
	"errors"

	"example.com/socialnet/internal/models"
	"example.com/socialnet/internal/store"
	"github.com/segmentio/kafka-go"
)

// MockKafka records written engagement events and optionally applies them to
// the store immediately, so server tests can observe counter bumps without a
// running worker.
type MockKafka struct {
	Store           *store.MockStore
	WrittenMessages []kafka.Message // stores messages written via WriteMessages
	ReadMessages    []kafka.Message // queue of messages to be read via ReadMessage
	ShouldFail      bool            // flag to simulate failures during write or read operations
}

// WriteMessages simulates publishing engagement events. When a store is
// attached, each event bumps the post author's impressions right away.
func (m *MockKafka) WriteMessages(messages ...kafka.Message) error {
	if m.ShouldFail {
		return errors.New("mock kafka write failed")
	}

	m.WrittenMessages = append(m.WrittenMessages, messages...)

	if m.Store == nil {
		return nil
	}

	for _, msg := range messages {
		var event models.EngagementEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}

		author, err := m.Store.GetUserByID(event.AuthorID)
		if err != nil {
			continue
		}
		_ = m.Store.UpdateUserEngagement(author.ID, author.ViewedProfile, author.Impressions+1)
	}

	return nil
}

// ReadMessage pops the next queued message.
func (m *MockKafka) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if m.ShouldFail {
		return kafka.Message{}, errors.New("mock kafka read failed")
	}
	if len(m.ReadMessages) == 0 {
		return kafka.Message{}, errors.New("no messages")
	}
	// Take the first message from the queue and remove it
	msg := m.ReadMessages[0]
	m.ReadMessages = m.ReadMessages[1:]
	return msg, nil
}

// Close is a no-op.
func (m *MockKafka) Close() error { return nil }

// MockKafkaFail always fails.
type MockKafkaFail struct{}

func (m *MockKafkaFail) WriteMessages(messages ...kafka.Message) error {
	return errors.New("mock kafka write failed")
}

func (m *MockKafkaFail) ReadMessage(ctx context.Context) (kafka.Message, error) {
	return kafka.Message{}, errors.New("mock kafka read failed")
}

func (m *MockKafkaFail) Close() error { return nil }
