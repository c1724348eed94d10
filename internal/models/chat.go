package models

// Update is one inbound event from a user, already stripped of transport details.
// Exactly one of Command, Contact or Text is meaningful.
type Update struct {
	ChatID  int64
	From    User
	Command string // without the leading slash
	Args    string
	Text    string
	Contact *Contact
}

type MediaKind string

const (
	MediaPhoto    MediaKind = "photo"
	MediaDocument MediaKind = "document"
)

// Media is an attachment sent either from a local file or a previously uploaded file id.
type Media struct {
	Kind   MediaKind
	Path   string
	FileID string
}

type Button struct {
	Text           string
	RequestContact bool
}

// Keyboard is a reply keyboard. Remove hides whatever keyboard the client shows.
type Keyboard struct {
	Rows   [][]Button
	Remove bool
}

// Message is an outbound message. With Media set, Text becomes the caption.
type Message struct {
	ChatID   int64
	Text     string
	Markdown bool
	Keyboard *Keyboard
	Media    *Media
	// NoPreview disables link previews for text messages
	NoPreview bool
}

// Sent describes a delivered message.
type Sent struct {
	MessageID int
	FileID    string
}
