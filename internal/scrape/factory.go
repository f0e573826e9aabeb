package scrape

// Adapters returns all registered site adapters
func Adapters() []Adapter {
	return []Adapter{
		NewIkmanAdapter(),
		NewLankaLandAdapter(),
	}
}

// Detect resolves the adapter responsible for the given page URL
func Detect(pageURL string) (Adapter, bool) {
	for _, a := range Adapters() {
		if a.IsListingPage(pageURL) {
			return a, true
		}
	}
	return nil, false
}
