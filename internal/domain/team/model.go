package team

// Team is one club from the provider's team catalog.
type Team struct {
	ID      int64
	Name    string
	Code    string
	Country string
	Founded int
	LogoURL string
}
