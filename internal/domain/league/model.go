package league

// League is one competition from the provider's league catalog.
type League struct {
	ID      int64
	Name    string
	Type    string
	Country string
	LogoURL string
	Season  int
}
