package dutycore

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

// Store is the in-memory duty record store for the currently loaded sessions.
// Mutations on a single session are serialized by a per-session mutex;
// sessions are independent, so there is no cross-session coordination. Reads
// return copies, so aggregation always sees a consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*sessionState
	nextID   atomic.Int64
}

type sessionState struct {
	mu      sync.Mutex
	session domain.DutySession
	records []*domain.AttendanceRecord // insertion order
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*sessionState),
	}
}

// RecordPatch describes a partial update to an attendance record. Nil fields
// are left untouched. Setting OutTime to an empty string reopens the record.
type RecordPatch struct {
	Location      *string
	Point         *string
	InTime        *string
	OutTime       *string
	ProperUniform *bool
}

// PutSession loads or refreshes a session's metadata, keeping any records
// already held for it.
func (s *Store) PutSession(session domain.DutySession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[session.ID]; ok {
		st.mu.Lock()
		st.session = session
		st.mu.Unlock()
		return
	}
	s.sessions[session.ID] = &sessionState{session: session}
}

// LoadRecords replaces the session's record list, typically after a warm
// load from persistence.
func (s *Store) LoadRecords(sessionID int64, records []domain.AttendanceRecord) error {
	st, err := s.state(sessionID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.records = make([]*domain.AttendanceRecord, len(records))
	for i := range records {
		rec := records[i]
		st.records[i] = &rec
		s.bumpNextID(rec.ID)
	}
	return nil
}

// EvictSession drops a session and its records from memory. It does not
// touch persistence.
func (s *Store) EvictSession(sessionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Session returns a copy of the session's metadata.
func (s *Store) Session(sessionID int64) (domain.DutySession, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return domain.DutySession{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.session, nil
}

// Add inserts a record into its session, assigning a fresh unique id when
// the record carries none. Each call assigns a new id, so Add is not safe to
// blindly retry without caller-side deduplication. Fails with
// ErrSessionClosed once the session is completed.
func (s *Store) Add(record domain.AttendanceRecord) (int64, error) {
	st, err := s.state(record.SessionID)
	if err != nil {
		return 0, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !CanMutate(st.session) {
		return 0, ErrSessionClosed
	}

	if record.ID == 0 {
		record.ID = s.allocID()
	} else {
		s.bumpNextID(record.ID)
	}

	st.records = append(st.records, &record)
	return record.ID, nil
}

// Update applies patch to the record with the given id. Fails with
// ErrNotFound if the session holds no such record, ErrSessionClosed if the
// session is completed.
func (s *Store) Update(sessionID, recordID int64, patch RecordPatch) error {
	st, err := s.state(sessionID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !CanMutate(st.session) {
		return ErrSessionClosed
	}

	rec := findRecord(st.records, recordID)
	if rec == nil {
		return fmt.Errorf("record %d: %w", recordID, ErrNotFound)
	}

	if patch.Location != nil {
		rec.Location = *patch.Location
	}
	if patch.Point != nil {
		rec.Point = *patch.Point
	}
	if patch.InTime != nil {
		rec.InTime = *patch.InTime
	}
	if patch.OutTime != nil {
		rec.OutTime = *patch.OutTime
	}
	if patch.ProperUniform != nil {
		rec.ProperUniform = *patch.ProperUniform
	}
	return nil
}

// Remove deletes the record with the given id. Removing a nonexistent id
// fails with ErrNotFound, consistent with Update.
func (s *Store) Remove(sessionID, recordID int64) error {
	st, err := s.state(sessionID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !CanMutate(st.session) {
		return ErrSessionClosed
	}

	for i, rec := range st.records {
		if rec.ID == recordID {
			st.records = append(st.records[:i], st.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %d: %w", recordID, ErrNotFound)
}

// Wipe clears every record of the session while leaving the session itself
// open. Refused once the session is completed.
func (s *Store) Wipe(sessionID int64) error {
	st, err := s.state(sessionID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !CanMutate(st.session) {
		return ErrSessionClosed
	}
	st.records = nil
	return nil
}

// ListBySession returns the session's records in insertion order. Callers
// sort for display.
func (s *Store) ListBySession(sessionID int64) ([]domain.AttendanceRecord, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]domain.AttendanceRecord, len(st.records))
	for i, rec := range st.records {
		out[i] = *rec
	}
	return out, nil
}

// OpenRecords returns the session's records whose out-time is unset.
func (s *Store) OpenRecords(sessionID int64) ([]domain.AttendanceRecord, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]domain.AttendanceRecord, 0)
	for _, rec := range st.records {
		if rec.Open() {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// CanMutate reports whether the session still accepts record mutations.
func (s *Store) CanMutate(sessionID int64) (bool, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return false, err
	}
	return CanMutate(session), nil
}

// CanComplete reports whether the session has no open records left.
func (s *Store) CanComplete(sessionID int64) (bool, error) {
	open, err := s.OpenRecords(sessionID)
	if err != nil {
		return false, err
	}
	return len(open) == 0, nil
}

// Complete finalizes the session and returns the updated metadata.
// Idempotent: completing a completed session is a no-op success.
func (s *Store) Complete(sessionID int64) (domain.DutySession, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return domain.DutySession{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	records := make([]domain.AttendanceRecord, len(st.records))
	for i, rec := range st.records {
		records[i] = *rec
	}

	if err := Complete(&st.session, records); err != nil {
		return domain.DutySession{}, err
	}
	return st.session, nil
}

// ApplyExternalChange mutates the store in response to a record event from
// the live-update feed, under the same guards as a local mutation.
func (s *Store) ApplyExternalChange(ev domain.ChangeEvent) error {
	switch ev.Type {
	case domain.ChangeEventCreate:
		if ev.Record == nil {
			return fmt.Errorf("create event without record: %w", ErrNotFound)
		}
		_, err := s.Add(*ev.Record)
		return err

	case domain.ChangeEventUpdate:
		if ev.Record == nil {
			return fmt.Errorf("update event without record: %w", ErrNotFound)
		}
		return s.replace(*ev.Record)

	case domain.ChangeEventDelete:
		sessionID, ok := s.sessionOfRecord(ev.RecordID)
		if !ok {
			return fmt.Errorf("record %d: %w", ev.RecordID, ErrNotFound)
		}
		return s.Remove(sessionID, ev.RecordID)

	default:
		return fmt.Errorf("unknown change event type %q", ev.Type)
	}
}

// replace overwrites a record wholesale; external updates carry the full row.
func (s *Store) replace(record domain.AttendanceRecord) error {
	st, err := s.state(record.SessionID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !CanMutate(st.session) {
		return ErrSessionClosed
	}

	rec := findRecord(st.records, record.ID)
	if rec == nil {
		return fmt.Errorf("record %d: %w", record.ID, ErrNotFound)
	}
	*rec = record
	return nil
}

func (s *Store) sessionOfRecord(recordID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, st := range s.sessions {
		st.mu.Lock()
		found := findRecord(st.records, recordID) != nil
		st.mu.Unlock()
		if found {
			return id, true
		}
	}
	return 0, false
}

func (s *Store) state(sessionID int64) (*sessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrNotFound)
	}
	return st, nil
}

func (s *Store) allocID() int64 {
	return s.nextID.Add(1)
}

// bumpNextID keeps the id allocator ahead of every externally assigned id.
func (s *Store) bumpNextID(id int64) {
	for {
		cur := s.nextID.Load()
		if id <= cur || s.nextID.CompareAndSwap(cur, id) {
			return
		}
	}
}

func findRecord(records []*domain.AttendanceRecord, id int64) *domain.AttendanceRecord {
	for _, rec := range records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}
