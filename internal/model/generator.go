package model

// GenerateRequest represents a password generation request.
// Pointer bools distinguish missing (nil -> default true) from explicit false.
type GenerateRequest struct {
	Length           int   `json:"length"`
	Uppercase        *bool `json:"uppercase"`
	Lowercase        *bool `json:"lowercase"`
	Numbers          *bool `json:"numbers"`
	Symbols          *bool `json:"symbols"`
	ExcludeAmbiguous bool  `json:"exclude_ambiguous"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}
