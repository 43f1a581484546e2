package handler

import (
	"sync"

	"TripBot/model"
)

// session is one chat's conversation. Its lock is held for the whole
// update so a chat never sees two of its own updates interleaved, while
// other chats proceed.
type session struct {
	mu sync.Mutex
	model.UserState
}

type sessions struct {
	mu   sync.Mutex
	byID map[int64]*session
}

func newSessions() *sessions {
	return &sessions{byID: make(map[int64]*session)}
}

func (s *sessions) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[userID]
	if !ok {
		sess = &session{UserState: model.UserState{State: model.StateIdle}}
		s.byID[userID] = sess
	}
	return sess
}
