package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length      int    `json:"length"`
	Uppercase   *bool  `json:"uppercase"`
	Lowercase   *bool  `json:"lowercase"`
	Numbers     *bool  `json:"numbers"`
	Symbols     *bool  `json:"symbols"`
	RequireEach bool   `json:"require_each"`
	Count       int    `json:"count"`
	Source      string `json:"source"`
}

// GenerateResponse carries one or more passwords drawn with the same configuration.
type GenerateResponse struct {
	Passwords []string `json:"passwords"`
	Length    int      `json:"length"`
	PoolSize  int      `json:"pool_size"`
}

// CharacterClass describes one selectable alphabet.
type CharacterClass struct {
	Name     string `json:"name"`
	Alphabet string `json:"alphabet"`
	Size     int    `json:"size"`
}
