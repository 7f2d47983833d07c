package catalog

// Product is one entry in the remote catalog. Products are read-only from
// this application's point of view: they are fetched, rendered and copied
// into cart lines, never mutated or persisted locally.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
