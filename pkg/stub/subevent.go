package stub

import "time"

// Sub-event type tags.
const (
	SubEventNonMatch = "REQUEST_NOT_MATCHED"
	SubEventInfo     = "INFO"
	SubEventWarning  = "WARNING"
	SubEventError    = "ERROR"
)

// SubEvent is an immutable diagnostic annotation attached to a ServeEvent.
// The Type tag determines which payload field is populated.
type SubEvent struct {
	// Type is the sub-event kind tag.
	Type string `json:"type"`

	// Timestamp is when the sub-event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// NonMatch holds the diagnostic response snapshot for
	// SubEventNonMatch entries.
	NonMatch *NonMatchData `json:"nonMatch,omitempty"`

	// Message holds the text for INFO/WARNING/ERROR entries.
	Message string `json:"message,omitempty"`
}

// NonMatchData snapshots the diagnostic response produced when no stub
// matched a request: status, the first content-type value (empty when the
// renderer set none), and the body.
type NonMatchData struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        string `json:"body,omitempty"`
}

// NewNonMatchSubEvent builds a non-match sub-event from the diagnostic
// response fields.
func NewNonMatchSubEvent(status int, contentType, body string) SubEvent {
	return SubEvent{
		Type:      SubEventNonMatch,
		Timestamp: time.Now(),
		NonMatch: &NonMatchData{
			Status:      status,
			ContentType: contentType,
			Body:        body,
		},
	}
}

// NewMessageSubEvent builds a message-carrying sub-event of the given type.
func NewMessageSubEvent(eventType, message string) SubEvent {
	return SubEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Message:   message,
	}
}
