package model

// Event represents one bookable entry in the static event catalog.  The
// catalog is authored as a JSON document and loaded once at startup; events
// are never mutated afterwards, so the struct carries no timestamps or
// ownership fields.  The JSON tags mirror the catalog document exactly.
//
// Fields:
//  ID             – unique string identifier, stable across requests.
//  Category       – short classification tag (movie, concert, park, ...).
//  Title          – display name.
//  Language       – spoken/content language of the event.
//  AgeRestriction – categorical rating ("UA", "18yrs+", "21yrs+", ...).
//  Price          – ticket price in rupees; never negative.
//  Shows          – scheduled occurrences; every event has at least one.
type Event struct {
	ID             string  `json:"id"`
	Category       string  `json:"cat"`
	Title          string  `json:"title"`
	Language       string  `json:"lang"`
	AgeRestriction string  `json:"age"`
	Price          float64 `json:"price"`
	Shows          []Show  `json:"shows"`
}

// Show is a single scheduled occurrence of an Event on one calendar day.
// The venue text is free-form and is the only source of geographic,
// accessibility and parking signals; there is no structured geo data.
type Show struct {
	Date  string   `json:"date"`
	Venue string   `json:"venue"`
	Times []string `json:"times"`
}
