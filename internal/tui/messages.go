package tui

// Role tells who wrote a transcript entry.
type Role int

const (
	RoleBot Role = iota
	RoleUser
)

// Message is one entry of the chat transcript.
type Message struct {
	Text string
	Role Role
}

// answerMsg carries the advisor's reply to a question.
type answerMsg struct {
	text string
}
