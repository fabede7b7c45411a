package model

type Club struct {
	ClubID      int      `json:"clubId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EventIDs    Set[int] `json:"eventIds"`
	ImageURL    string   `json:"imageUrl"`
}

type Event struct {
	EventID     int         `json:"eventId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ClubID      int         `json:"clubId"`
	Tags        Set[string] `json:"tags"`
	AttendeeIDs Set[int]    `json:"attendeeIds"`
	ImageURL    string      `json:"imageUrl"`
}

// HasTag reports whether the event carries tag. Matching is exact and case-sensitive.
func (e Event) HasTag(tag string) bool {
	return e.Tags.Contains(tag)
}
