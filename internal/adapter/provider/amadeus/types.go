package amadeus

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// searchResponse is the flight offers search envelope.
type searchResponse struct {
	Data []flightOffer `json:"data"`
}

// flightOffer is one priced round-trip offer. A round trip carries two
// itineraries: outbound first, return second.
type flightOffer struct {
	ID          string          `json:"id"`
	Itineraries []offerItinerary `json:"itineraries"`
	Price       offerPrice      `json:"price"`
}

// offerItinerary is one direction of the trip.
type offerItinerary struct {
	// Duration is an ISO 8601 duration (e.g., "PT10H30M")
	Duration string         `json:"duration"`
	Segments []offerSegment `json:"segments"`
}

// offerSegment is one flown leg.
type offerSegment struct {
	Departure   segmentPoint `json:"departure"`
	Arrival     segmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

// segmentPoint is an airport plus a local wall-clock timestamp.
type segmentPoint struct {
	IataCode string `json:"iataCode"`
	// At is a local datetime without offset (e.g., "2026-04-15T10:40:00")
	At string `json:"at"`
}

// offerPrice carries the round-trip total as a decimal string.
type offerPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// locationsResponse is the reference-data locations envelope.
type locationsResponse struct {
	Data []locationEntry `json:"data"`
}

type locationEntry struct {
	Name    string          `json:"name"`
	Address locationAddress `json:"address"`
}

type locationAddress struct {
	CityName string `json:"cityName"`
}

// errorResponse is the API error envelope.
type errorResponse struct {
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
