package core

import "sync"

// TopicRegistry maps a subscription key (user or guest ID) to the set
// of live sessions observing that owner's connection. It is the only
// structure shared across sessions, so all access is locked; fanout
// reads take a snapshot.
type TopicRegistry struct {
	mu      sync.RWMutex
	topics  map[string]map[*Session]struct{}
	current map[*Session]string
}

// NewTopicRegistry constructs an empty registry.
func NewTopicRegistry() *TopicRegistry {
	return &TopicRegistry{
		topics:  make(map[string]map[*Session]struct{}),
		current: make(map[*Session]string),
	}
}

// Subscribe adds the session to key's member set. A session subscribed
// elsewhere is moved, never double-subscribed.
func (r *TopicRegistry) Subscribe(s *Session, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(s)

	members, ok := r.topics[key]
	if !ok {
		members = make(map[*Session]struct{})
		r.topics[key] = members
	}
	members[s] = struct{}{}
	r.current[s] = key
}

// Unsubscribe removes the session from its topic, if any.
func (r *TopicRegistry) Unsubscribe(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(s)
}

func (r *TopicRegistry) removeLocked(s *Session) {
	key, ok := r.current[s]
	if !ok {
		return
	}
	delete(r.current, s)

	members := r.topics[key]
	delete(members, s)
	if len(members) == 0 {
		delete(r.topics, key)
	}
}

// MembersOf returns a snapshot of the sessions subscribed to key.
func (r *TopicRegistry) MembersOf(key string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.topics[key]
	out := make([]*Session, 0, len(members))
	for s := range members {
		out = append(out, s)
	}
	return out
}

// Publish delivers an event to every session subscribed to key.
func (r *TopicRegistry) Publish(key string, event *Event) {
	for _, s := range r.MembersOf(key) {
		s.Deliver(event)
	}
}
