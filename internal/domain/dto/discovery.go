package dto

// ClubFilter narrows discovery listings to an organizational unit. Empty
// fields match everything.
type ClubFilter struct {
	University string
	Faculty    string
	Department string
}

// ClubSummary is the compact club card shown in discovery listings.
type ClubSummary struct {
	ID          string
	Name        string
	ShortName   string
	University  string
	Faculty     string
	Department  string
	Color       string
	MemberCount int64
	EventCount  int64
}

// ClubDiscovery is the grouped discovery view: the most active clubs by two
// measures plus a random sample.
type ClubDiscovery struct {
	TopByMembers []ClubSummary
	TopByEvents  []ClubSummary
	Random       []ClubSummary
}
