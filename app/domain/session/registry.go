package session

import (
	"sync"

	"vsguard.ai/vision-gateway/app/utils/logger"
)

// Registry maps client identities to their live sessions and owns all
// connection bookkeeping: register, unregister, and fan-out with automatic
// pruning of dead sessions. It holds no analysis semantics and is safe for
// concurrent use by many connection handlers.
type Registry struct {
	mu     sync.RWMutex
	groups map[string][]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[string][]*Session),
	}
}

// Register adds a session to its client group, creating the group if absent.
// Registering the same session twice is a no-op.
func (r *Registry) Register(clientID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.groups[clientID] {
		if existing == s {
			return
		}
	}
	r.groups[clientID] = append(r.groups[clientID], s)
	logger.GetLogger().WithFields(map[string]any{
		"client_id":  clientID,
		"session_id": s.ID,
		"group_size": len(r.groups[clientID]),
	}).Info("session registered")
}

// Unregister removes a session from its group and deletes the group once it
// is empty, so an identity is present iff it has live sessions. Calling it
// for an absent session or identity is a no-op.
func (r *Registry) Unregister(clientID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(clientID, s)
}

func (r *Registry) removeLocked(clientID string, s *Session) {
	group, ok := r.groups[clientID]
	if !ok {
		return
	}
	for i, existing := range group {
		if existing == s {
			r.groups[clientID] = append(group[:i], group[i+1:]...)
			break
		}
	}
	if len(r.groups[clientID]) == 0 {
		delete(r.groups, clientID)
	}
}

// snapshot returns the group's sessions in registration order, so fan-out is
// deterministic without holding the lock across sends.
func (r *Registry) snapshot(clientID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group := r.groups[clientID]
	out := make([]*Session, len(group))
	copy(out, group)
	return out
}

// Broadcast sends a JSON payload to every session of a client group in
// registration order. A session whose send fails is unregistered and closed;
// delivery to the remaining sessions continues. Returns the number of
// successful deliveries. Broadcasting to an unknown identity delivers to
// zero recipients.
func (r *Registry) Broadcast(clientID string, payload any) int {
	return r.fanOut(clientID, func(s *Session) error {
		return s.SendJSON(payload)
	})
}

// BroadcastText sends a literal text frame to every session of a client
// group, with the same pruning semantics as Broadcast. Used for control
// command acknowledgements.
func (r *Registry) BroadcastText(clientID string, text string) int {
	return r.fanOut(clientID, func(s *Session) error {
		return s.SendText(text)
	})
}

func (r *Registry) fanOut(clientID string, send func(*Session) error) int {
	delivered := 0
	for _, s := range r.snapshot(clientID) {
		if err := send(s); err != nil {
			logger.GetLogger().WithFields(map[string]any{
				"client_id":  clientID,
				"session_id": s.ID,
				"error":      err.Error(),
			}).Warn("send failed, pruning session")
			r.Unregister(clientID, s)
			_ = s.Close()
			continue
		}
		delivered++
	}
	return delivered
}

// GroupSize reports how many sessions a client identity currently has.
func (r *Registry) GroupSize(clientID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[clientID])
}

// ClientCount reports how many client identities have live sessions.
func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}

// SessionCount reports the total number of live sessions.
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, group := range r.groups {
		total += len(group)
	}
	return total
}
