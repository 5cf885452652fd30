package domain

// Place is a listing owned by a user.
type Place struct {
	Entity

	// Title is trimmed and required.
	Title string `json:"title"`

	// Description is trimmed, nil when absent or blank.
	Description *string `json:"description"`

	// Price per night. Always > 0.
	Price float64 `json:"price"`

	// Latitude in [-90, 90].
	Latitude float64 `json:"latitude"`

	// Longitude in [-180, 180].
	Longitude float64 `json:"longitude"`

	// OwnerID references the owning User. Existence is checked by the facade.
	OwnerID string `json:"owner_id"`

	// Amenities holds Amenity ids without duplicates.
	Amenities []string `json:"amenities"`

	// Reviews holds Review ids without duplicates, in creation order.
	Reviews []string `json:"reviews"`
}

// PlaceParams contains the data needed to construct a Place.
type PlaceParams struct {
	Title       string
	Description *string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	Amenities   []string
}

var placeFields = []string{"title", "description", "price", "latitude", "longitude", "owner_id", "amenities"}

// NewPlace creates a validated Place. The amenity list is copied.
func NewPlace(params PlaceParams) (*Place, error) {
	p := &Place{
		Entity:    newEntity(),
		Amenities: []string{},
		Reviews:   []string{},
	}
	err := applyFields(Fields{
		"title":       params.Title,
		"description": params.Description,
		"price":       params.Price,
		"latitude":    params.Latitude,
		"longitude":   params.Longitude,
		"owner_id":    params.OwnerID,
		"amenities":   params.Amenities,
	}, placeFields, p.set)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Place) set(key string, value any) error {
	var err error
	switch key {
	case "title":
		p.Title, err = ValidateTitle(value)
	case "description":
		p.Description, err = ValidateDescription(value)
	case "price":
		p.Price, err = ValidatePrice(value)
	case "latitude":
		p.Latitude, err = ValidateLatitude(value)
	case "longitude":
		p.Longitude, err = ValidateLongitude(value)
	case "owner_id":
		p.OwnerID, err = ValidateID(key, value)
	case "amenities":
		p.Amenities, err = ValidateIDList(key, value)
	}
	return err
}

// Update applies the recognized keys of fields atomically.
// Reference checks for owner_id and amenities belong to the caller.
func (p *Place) Update(fields Fields) error {
	next := p.Clone()
	if err := applyFields(fields, placeFields, next.set); err != nil {
		return err
	}
	next.touch()
	*p = *next
	return nil
}

// HasAmenity reports whether the amenity id is listed.
func (p *Place) HasAmenity(amenityID string) bool {
	for _, id := range p.Amenities {
		if id == amenityID {
			return true
		}
	}
	return false
}

// AddAmenity lists an amenity. Duplicates are ignored.
func (p *Place) AddAmenity(amenityID string) {
	if ids, added := appendUnique(p.Amenities, amenityID); added {
		p.Amenities = ids
		p.touch()
	}
}

// AddReview attaches a review id. Duplicates are ignored.
func (p *Place) AddReview(reviewID string) {
	if ids, added := appendUnique(p.Reviews, reviewID); added {
		p.Reviews = ids
		p.touch()
	}
}

// RemoveReview detaches a review id if present.
func (p *Place) RemoveReview(reviewID string) {
	if ids, removed := removeID(p.Reviews, reviewID); removed {
		p.Reviews = ids
		p.touch()
	}
}

// Record returns the serializable field mapping. A missing description is nil.
func (p *Place) Record() Record {
	r := p.record()
	r["title"] = p.Title
	if p.Description != nil {
		r["description"] = *p.Description
	} else {
		r["description"] = nil
	}
	r["price"] = p.Price
	r["latitude"] = p.Latitude
	r["longitude"] = p.Longitude
	r["owner_id"] = p.OwnerID
	r["amenities"] = copyIDs(p.Amenities)
	r["reviews"] = copyIDs(p.Reviews)
	return r
}

// Clone returns a deep copy.
func (p *Place) Clone() *Place {
	c := *p
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
	c.Amenities = copyIDs(p.Amenities)
	c.Reviews = copyIDs(p.Reviews)
	return &c
}
