package user

// RegisterInput is the input of /register. An empty Timezone keeps the
// current one, or the default for a new user.
type RegisterInput struct {
	Username string `validate:"omitempty,displayname"`
	Timezone string `validate:"omitempty,timezone"`
}
