package domain

import (
	"strconv"
	"time"
)

type EventType string

const (
	EventMessageCreated     EventType = "message-created"
	EventGuildMemberRemoved EventType = "guild-member-removed"
)

// IdentityID is the host-side numeric user identity, stable across platforms
// for one bound account.
type IdentityID uint64

func (id IdentityID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseIdentityID accepts numbers and numeric text.
func ParseIdentityID(v Value) (IdentityID, bool) {
	switch v.Kind() {
	case KindNumber:
		n, _ := v.Number()
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return IdentityID(uint64(n)), true
	case KindText:
		s, _ := v.Text()
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return IdentityID(n), true
	default:
		return 0, false
	}
}

type Message struct {
	ID        string
	Platform  string
	ChannelID string
	GuildID   string
	UserID    string
	UserName  string
	Content   string
	QuoteID   string
	Timestamp time.Time
}

type MessagePage struct {
	Messages []Message
	Next     string
}

// Event is a platform notification delivered to listeners. Identity is set
// by the host when it resolved the author before dispatch.
type Event struct {
	Type     EventType
	Platform string
	SelfID   string
	IsDirect bool
	Message  Message
	Member   Member
	Identity *IdentityID
}

func (e Event) ChannelKey() string { return e.Platform + ":" + e.Message.ChannelID }

// SessionContext describes the message that started an execution.
type SessionContext struct {
	Platform     string
	SelfID       string
	ChannelID    string
	GuildID      string
	UserID       string
	UserName     string
	MessageID    string
	Content      string
	QuoteID      string
	QuoteContent string
	IsDirect     bool
	Appel        bool
	HasAt        bool
	AtSelf       bool
}

func (s SessionContext) ChannelKey() string { return s.Platform + ":" + s.ChannelID }

func (s SessionContext) Message() Message {
	return Message{
		ID:        s.MessageID,
		Platform:  s.Platform,
		ChannelID: s.ChannelID,
		GuildID:   s.GuildID,
		UserID:    s.UserID,
		UserName:  s.UserName,
		Content:   s.Content,
		QuoteID:   s.QuoteID,
	}
}

// Projection renders a message as the fixed list scripts consume:
// [content, message id, user name, user id, identity id, channel id, quote id].
// Missing fields project as Undefined.
func Projection(m Message, identity *IdentityID) Value {
	id := Undefined
	if identity != nil {
		id = Number(float64(*identity))
	}

	return List(
		optionalText(m.Content),
		optionalText(m.ID),
		optionalText(m.UserName),
		optionalText(m.UserID),
		id,
		optionalText(m.ChannelID),
		optionalText(m.QuoteID),
	)
}

func optionalText(s string) Value {
	if s == "" {
		return Undefined
	}
	return Text(s)
}
