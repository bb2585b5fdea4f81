package country

// Country is one entry of the provider's country catalog.
type Country struct {
	Code    string
	Name    string
	FlagURL string
}
