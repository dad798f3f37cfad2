package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueName = "drawpoker_actions"

	publishTimeout = 2 * time.Second
	bufferSize     = 256
)

// ActionRecord is one public table event as queued for an external historian
type ActionRecord struct {
	TableID       string       `json:"table_id"`
	HandID        string       `json:"hand_id,omitempty"`
	ActionIndex   int          `json:"action_index"`
	ActorName     string       `json:"actor_name,omitempty"`
	ActionType    string       `json:"action_type"`
	ActionPayload events.Event `json:"action_payload"`
	Timestamp     int64        `json:"timestamp"`
}

// pusher is the part of the redis client the publisher needs
type pusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// ConnectRedis opens a client and checks the server answers
func ConnectRedis(addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Publisher pushes public table events onto a redis list. The game never
// waits on redis: records are queued and a single worker pushes them in order.
// When the queue is full records are dropped and logged.
type Publisher struct {
	client pusher
	queue  string
	logger logrus.FieldLogger

	mu      sync.Mutex
	index   int
	closed  bool
	records chan ActionRecord
	done    chan struct{}
}

func NewPublisher(client pusher, queue string, logger logrus.FieldLogger) *Publisher {
	if queue == "" {
		queue = DefaultQueueName
	}
	p := &Publisher{
		client:  client,
		queue:   queue,
		logger:  logger,
		records: make(chan ActionRecord, bufferSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// HandleEvent queues a record for every public event
func (p *Publisher) HandleEvent(event events.Event) {
	if events.IsPrivate(event) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.index++
	record := ActionRecord{
		TableID:       events.ExtractTableID(event),
		HandID:        events.ExtractHandID(event),
		ActionIndex:   p.index,
		ActorName:     events.ExtractPlayerName(event),
		ActionType:    event.Name(),
		ActionPayload: event,
		Timestamp:     time.Now().UnixMilli(),
	}

	select {
	case p.records <- record:
	default:
		p.logger.WithFields(logrus.Fields{
			"action_index": record.ActionIndex,
			"action_type":  record.ActionType,
		}).Warn("action queue full, dropping record")
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for record := range p.records {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := p.publish(ctx, record); err != nil {
			p.logger.WithError(err).WithField("action_index", record.ActionIndex).Error("failed to publish action")
		}
		cancel()
	}
}

func (p *Publisher) publish(ctx context.Context, record ActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ActionRecord: %w", err)
	}
	if err := p.client.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}

// Close stops accepting events and waits for the queued ones to be pushed
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.records)
	p.mu.Unlock()

	<-p.done
}
