package contact

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle of the most recent attempt.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
)

// Attempt is one dispatched submission.
type Attempt struct {
	Seq     uint64
	ID      string
	Payload Payload
	Started time.Time
}

// Settlement is the final result of an Attempt.
type Settlement struct {
	Seq      uint64
	ID       string
	Err      error
	Duration time.Duration
}

// Outcome classifies the settlement.
func (s Settlement) Outcome() Outcome {
	return Classify(s.Err)
}

// Submitter runs submission attempts against a Sender and applies their
// outcome to the form and notice board. Only the most recently started attempt
// may change what the user sees.
type Submitter struct {
	sender Sender
	fields Fields
	board  *Board
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	latest  uint64
	settled uint64
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithLogger sets the logger used for attempt tracing.
func WithLogger(l *slog.Logger) SubmitterOption {
	return func(s *Submitter) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) {
		s.now = now
	}
}

// NewSubmitter creates a Submitter.
func NewSubmitter(sender Sender, fields Fields, board *Board, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		sender: sender,
		fields: fields,
		board:  board,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin performs the synchronous part of a submit event: it snapshots the
// fields and assigns the attempt the next sequence number.
func (s *Submitter) Begin() Attempt {
	s.mu.Lock()
	s.latest++
	seq := s.latest
	s.mu.Unlock()

	a := Attempt{
		Seq:     seq,
		ID:      uuid.NewString(),
		Payload: PayloadFrom(s.fields),
		Started: s.now(),
	}
	s.logger.Debug("submission dispatched", "seq", a.Seq, "attempt_id", a.ID)
	return a
}

// Send delivers the attempt and waits for settlement. It touches no Submitter
// state and may run on any goroutine.
func (s *Submitter) Send(ctx context.Context, a Attempt) Settlement {
	err := s.sender.Submit(ctx, a.Payload)
	return Settlement{
		Seq:      a.Seq,
		ID:       a.ID,
		Err:      err,
		Duration: s.now().Sub(a.Started),
	}
}

// Settle applies st to the board and fields unless a later attempt has been
// started, in which case st is discarded and Settle returns false.
func (s *Submitter) Settle(st Settlement) bool {
	s.mu.Lock()
	if st.Seq < s.latest {
		s.mu.Unlock()
		s.logger.Debug("stale settlement discarded", "seq", st.Seq, "attempt_id", st.ID, "latest", s.latest)
		return false
	}
	s.settled = st.Seq
	s.mu.Unlock()

	outcome := st.Outcome()
	switch outcome {
	case OutcomeSuccess:
		s.board.Set(NoticeSuccess, "")
		s.fields.Reset()
	case OutcomeApplicationError:
		s.board.Set(NoticeError, MsgTryAgainLater)
	default:
		s.board.Set(NoticeError, MsgCheckNetwork)
	}

	if st.Err != nil {
		s.logger.Info("submission settled", "seq", st.Seq, "attempt_id", st.ID,
			"outcome", string(outcome), "duration", st.Duration, "error", st.Err)
	} else {
		s.logger.Info("submission settled", "seq", st.Seq, "attempt_id", st.ID,
			"outcome", string(outcome), "duration", st.Duration)
	}
	return true
}

// Submit runs one attempt to completion on the calling goroutine.
func (s *Submitter) Submit(ctx context.Context) Settlement {
	st := s.Send(ctx, s.Begin())
	s.Settle(st)
	return st
}

// State reports StatePending while the most recent attempt is unsettled.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest > s.settled {
		return StatePending
	}
	return StateIdle
}

// Latest returns the sequence number of the most recently started attempt.
func (s *Submitter) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
