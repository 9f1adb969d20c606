package realtime

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/api/metrics"
	"github.com/companycore/management-system/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// delivery is one fan-out job: a durably stored message plus the sender's
// display name for the derived notification.
type delivery struct {
	msg        *domain.Message
	senderName string
}

// Dispatcher routes deliveries to a fixed set of workers by hashing the
// receiver id, so pushes to one receiver keep their enqueue order while
// socket writes stay off the request path. Implements ports.MessageDelivery.
type Dispatcher struct {
	workers []chan delivery
	hub     *Hub
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, hub *Hub, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan delivery, numWorkers),
		hub:     hub,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan delivery, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, ch := range d.workers {
		go d.runWorker(ctx, ch)
	}
}

// Deliver enqueues the fan-out for an already persisted message. It never
// blocks: if the shard's buffer is full the push is dropped, the message
// stays durable, and the receiver sees it on the next poll.
func (d *Dispatcher) Deliver(msg *domain.Message, senderName string) {
	job := delivery{msg: msg, senderName: senderName}
	select {
	case d.workers[d.shardIndex(msg.ReceiverID)] <- job:
	default:
		metrics.RealtimeDroppedTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().Str("receiver", msg.ReceiverID).Msg("delivery queue full, push skipped")
	}
}

// shardIndex maps a receiver id deterministically to a worker index.
func (d *Dispatcher) shardIndex(receiverID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(receiverID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, ch <-chan delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.push(job)
		}
	}
}

// push emits both events to the receiver's connection. An offline receiver
// gets neither; the stored message surfaces on their next fetch.
func (d *Dispatcher) push(job delivery) {
	if delivered := d.hub.Push(job.msg.ReceiverID, EventReceiveMessage, job.msg); !delivered {
		metrics.RealtimeOfflineTotal.Inc()
		return
	}
	d.hub.Push(job.msg.ReceiverID, EventNotification, newMessageNotification(job.msg, job.senderName))
}
