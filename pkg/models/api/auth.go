package api

type Credentials struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	AvatarURL     string `json:"avatar_url"`
}
