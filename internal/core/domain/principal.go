package domain

// Principal is an authorized caller identified by an API key. Every record
// name the key manages must match Regex. Revoked keys are soft-deleted,
// never removed.
type Principal struct {
	APIKey  string `json:"apiKey"`
	Regex   string `json:"regex"`
	Deleted bool   `json:"deleted"`
}

// Usable reports whether the principal may authorize requests.
func (p *Principal) Usable() bool {
	return p != nil && !p.Deleted
}
