package event

import "encoding/json"

type Type string

const (
	TypeCreated  Type = "created"
	TypeUpdated  Type = "updated"
	TypeDeleted  Type = "deleted"
	TypeUnmapped Type = "unmapped"
)

// topicTypes is the closed mapping from broker topic to event type.
// Records on topics outside this table are dropped without error.
var topicTypes = map[string]Type{
	"passport.created": TypeCreated,
	"passport.updated": TypeUpdated,
	"passport.deleted": TypeDeleted,
}

func ForTopic(topic string) Type {
	if t, ok := topicTypes[topic]; ok {
		return t
	}
	return TypeUnmapped
}

// Envelope is the broker record body. Only id and data are interpreted
// here; data stays opaque for downstream template logic. Producers may
// pin recipients with userIds or emails.
type Envelope struct {
	ID      string          `json:"id"`
	Data    json.RawMessage `json:"data,omitempty"`
	UserIDs []string        `json:"userIds,omitempty"`
	Emails  []string        `json:"emails,omitempty"`
}

func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
