package domain

type UserSession struct {
	Authenticated bool
	Username      string
}
