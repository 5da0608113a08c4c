package test

import "sync"

// BroadcastCall records a single publish invocation.
type BroadcastCall struct {
	UserID  int64
	Event   string
	Payload any
}

// BroadcasterStub records published events for assertions.
type BroadcasterStub struct {
	mu     sync.Mutex
	Global []BroadcastCall
	ToUser []BroadcastCall
}

// Publish records a global broadcast.
func (s *BroadcasterStub) Publish(event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Global = append(s.Global, BroadcastCall{Event: event, Payload: payload})
}

// PublishToUser records a per-user broadcast.
func (s *BroadcasterStub) PublishToUser(userID int64, event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ToUser = append(s.ToUser, BroadcastCall{UserID: userID, Event: event, Payload: payload})
}

// GlobalCount returns the number of global broadcasts recorded.
func (s *BroadcasterStub) GlobalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Global)
}

// ToUserCount returns the number of per-user broadcasts recorded.
func (s *BroadcasterStub) ToUserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ToUser)
}
