package domain

// Review is a user's rating of a place.
type Review struct {
	Entity

	// Text is trimmed, 1-1000 characters.
	Text string `json:"text"`

	// Rating is an integer in [1, 5].
	Rating int `json:"rating"`

	// PlaceID is derived from the Place passed at creation. Immutable.
	PlaceID string `json:"place_id"`

	// UserID is derived from the User passed at creation. Immutable.
	UserID string `json:"user_id"`
}

var reviewFields = []string{"text", "rating"}

// NewReview creates a validated Review. place and user must be live entities;
// only their ids are kept.
func NewReview(text string, rating int, place *Place, user *User) (*Review, error) {
	if place == nil {
		return nil, typeMismatch("place", "must be a Place")
	}
	if user == nil {
		return nil, typeMismatch("user", "must be a User")
	}

	r := &Review{
		Entity:  newEntity(),
		PlaceID: place.ID,
		UserID:  user.ID,
	}
	if err := applyFields(Fields{"text": text, "rating": rating}, reviewFields, r.set); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) set(key string, value any) error {
	var err error
	switch key {
	case "text":
		r.Text, err = ValidateReviewText(value)
	case "rating":
		r.Rating, err = ValidateRating(value)
	}
	return err
}

// Update applies text and rating atomically. Other keys are ignored.
func (r *Review) Update(fields Fields) error {
	next := r.Clone()
	if err := applyFields(fields, reviewFields, next.set); err != nil {
		return err
	}
	next.touch()
	*r = *next
	return nil
}

// Record returns the serializable field mapping.
func (r *Review) Record() Record {
	rec := r.record()
	rec["text"] = r.Text
	rec["rating"] = r.Rating
	rec["place_id"] = r.PlaceID
	rec["user_id"] = r.UserID
	return rec
}

// Clone returns a copy.
func (r *Review) Clone() *Review {
	c := *r
	return &c
}
