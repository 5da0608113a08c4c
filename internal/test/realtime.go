package test

import "net/http"

// RealtimeServerStub records websocket serve attempts without upgrading.
type RealtimeServerStub struct {
	ServeFn func(http.ResponseWriter, *http.Request, int64) error

	Served []int64
}

// Serve delegates to the override or records the user identifier.
func (s *RealtimeServerStub) Serve(w http.ResponseWriter, r *http.Request, userID int64) error {
	if s.ServeFn != nil {
		return s.ServeFn(w, r, userID)
	}
	s.Served = append(s.Served, userID)
	w.WriteHeader(http.StatusOK)
	return nil
}
