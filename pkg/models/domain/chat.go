package domain

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp string // HH:MM
}

type ChatStatus struct {
	Processing bool
	Messages   int
}
