package contact

import "sync"

// Fixed texts shown in the error region.
const (
	MsgTryAgainLater = "Oops! Something went wrong. Please try again later."
	MsgCheckNetwork  = "Oops! Something went wrong. Please check your network connection and try again."
)

// NoticeKind selects which notice region is visible.
type NoticeKind int

const (
	NoticeIdle NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// String returns a lowercase name for the kind.
func (k NoticeKind) String() string {
	switch k {
	case NoticeIdle:
		return "idle"
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a snapshot of the two notice regions.
type Notice struct {
	Kind   NoticeKind
	Detail string
}

// Board holds the success and error regions. Set is the only mutation, so the
// two regions are never visible together.
type Board struct {
	mu     sync.RWMutex
	notice Notice
}

// NewBoard returns a Board with both regions hidden.
func NewBoard() *Board {
	return &Board{}
}

// Set switches the visible region. detail is kept only for NoticeError.
func (b *Board) Set(kind NoticeKind, detail string) {
	if kind != NoticeError {
		detail = ""
	}
	b.mu.Lock()
	b.notice = Notice{Kind: kind, Detail: detail}
	b.mu.Unlock()
}

// Notice returns the current state.
func (b *Board) Notice() Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.notice
}

// SuccessVisible reports whether the success region is shown.
func (b *Board) SuccessVisible() bool {
	return b.Notice().Kind == NoticeSuccess
}

// ErrorVisible reports whether the error region is shown.
func (b *Board) ErrorVisible() bool {
	return b.Notice().Kind == NoticeError
}

// ErrorText returns the error region text, or "" when it is hidden.
func (b *Board) ErrorText() string {
	return b.Notice().Detail
}
