// Package remote feeds key transitions from remote pads, connected over
// WebRTC data channels, into the stage input.
package remote

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nobonobo/video-stage/schema"
	"github.com/nobonobo/video-stage/stage"
)

// Sink receives key transitions tagged with the pad that produced them.
// *stage.Input implements it.
type Sink interface {
	PressFrom(source stage.Source, key stage.Key)
	ReleaseFrom(source stage.Source, key stage.Key)
	ReleaseAll(source stage.Source)
}

var _ Sink = (*stage.Input)(nil)

// Router applies pad messages to a sink, one input source per peer, so a
// pad releasing or disconnecting only lets go of its own keys.
type Router struct {
	sink Sink

	mu    sync.Mutex
	names map[string]string
}

func NewRouter(sink Sink) *Router {
	return &Router{
		sink:  sink,
		names: make(map[string]string),
	}
}

// Source is the input source a peer's keys are held under.
func Source(peer string) stage.Source {
	return stage.Source("pad:" + peer)
}

// Dispatch decodes one message from peer and applies it.
func (r *Router) Dispatch(peer string, data []byte) error {
	var event schema.KeyEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Warn("Dropped pad message",
			slog.String("peer", peer),
			slog.String("error", err.Error()),
		)
		return err
	}
	r.Apply(peer, event)
	return nil
}

// Apply records the peer and forwards one transition.
func (r *Router) Apply(peer string, event schema.KeyEvent) {
	r.mu.Lock()
	if _, ok := r.names[peer]; !ok || event.Name != "" {
		r.names[peer] = event.Name
	}
	r.mu.Unlock()

	key := stage.Key(event.Key)
	if event.Down {
		r.sink.PressFrom(Source(peer), key)
	} else {
		r.sink.ReleaseFrom(Source(peer), key)
	}
}

// Drop forgets peer and releases every key it still holds.
func (r *Router) Drop(peer string) {
	r.mu.Lock()
	delete(r.names, peer)
	r.mu.Unlock()

	r.sink.ReleaseAll(Source(peer))
}

// Peers returns the display names of the connected pads by peer id.
func (r *Router) Peers() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string]string, len(r.names))
	for peer, name := range r.names {
		result[peer] = name
	}
	return result
}
