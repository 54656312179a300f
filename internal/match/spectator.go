package match

import "sync"

// Spectator receives match events.
type Spectator interface {
	// Send delivers an event. Must be non-blocking.
	Send(evt Event)

	// Done returns a channel that closes when the spectator stops watching.
	Done() <-chan struct{}
}

// ChannelSpectator is a Spectator backed by a buffered channel.
type ChannelSpectator struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSpectator creates a channel-based spectator.
// bufferSize controls how many events are held before the oldest is dropped.
func NewChannelSpectator(bufferSize int) *ChannelSpectator {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSpectator{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event.
// If the buffer is full the oldest event is dropped to make room.
func (s *ChannelSpectator) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		// Best effort
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to read events from.
func (s *ChannelSpectator) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSpectator) Done() <-chan struct{} {
	return s.done
}

// Close stops delivery. Safe to call multiple times.
func (s *ChannelSpectator) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

var _ Spectator = (*ChannelSpectator)(nil)
