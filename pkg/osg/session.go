package osg

// Session is the identity registry of one export. Every node constructor
// takes its ID from the session, so IDs are unique and strictly increasing in
// construction order within a session.
//
// A Session is not safe for concurrent use. Build one tree per session on a
// single goroutine, and Reset (or use a fresh Session) between exports.
type Session struct {
	counter uint64
}

// NewSession returns a session whose first ID is 0.
func NewSession() *Session {
	return &Session{}
}

// NextID returns the current counter value and advances it.
func (s *Session) NextID() uint64 {
	id := s.counter
	s.counter++
	return id
}

// Reset rewinds the counter to 0. Call it once at the start of an export,
// never while a tree is being built.
func (s *Session) Reset() {
	s.counter = 0
}

// Issued returns how many IDs were handed out since the last reset.
func (s *Session) Issued() uint64 {
	return s.counter
}

func (s *Session) newObject(class string) Object {
	return Object{class: class, counter: s.NextID()}
}
