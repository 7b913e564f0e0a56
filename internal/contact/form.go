package contact

import "sync"

// Field identifies one of the four form controls.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldSubject
	FieldMessage
)

// AllFields lists the controls in display order.
var AllFields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// String returns the JSON key for the field.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldSubject:
		return "subject"
	case FieldMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Fields is the set of input controls a submission reads from.
type Fields interface {
	Value(f Field) string
	Reset()
}

// Form is an in-memory Fields implementation.
type Form struct {
	mu     sync.Mutex
	values [4]string
}

// NewForm returns a Form prefilled from p.
func NewForm(p Payload) *Form {
	f := &Form{}
	f.values = [4]string{p.Name, p.Email, p.Subject, p.Message}
	return f
}

// Set replaces the value of one control. Unknown fields are ignored.
func (f *Form) Set(field Field, v string) {
	if field < FieldName || field > FieldMessage {
		return
	}
	f.mu.Lock()
	f.values[field] = v
	f.mu.Unlock()
}

// Value returns the current value of one control.
func (f *Form) Value(field Field) string {
	if field < FieldName || field > FieldMessage {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Reset clears all four controls.
func (f *Form) Reset() {
	f.mu.Lock()
	f.values = [4]string{}
	f.mu.Unlock()
}
