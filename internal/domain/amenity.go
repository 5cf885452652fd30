package domain

// Amenity is a feature a place can offer (e.g. "Wi-Fi").
type Amenity struct {
	Entity

	// Name is trimmed, 1-50 characters.
	Name string `json:"name"`
}

var amenityFields = []string{"name"}

// NewAmenity creates a validated Amenity.
func NewAmenity(name string) (*Amenity, error) {
	a := &Amenity{Entity: newEntity()}
	if err := applyFields(Fields{"name": name}, amenityFields, a.set); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amenity) set(key string, value any) error {
	var err error
	if key == "name" {
		a.Name, err = ValidateAmenityName(value)
	}
	return err
}

// Update applies the recognized keys of fields atomically.
func (a *Amenity) Update(fields Fields) error {
	next := a.Clone()
	if err := applyFields(fields, amenityFields, next.set); err != nil {
		return err
	}
	next.touch()
	*a = *next
	return nil
}

// Record returns the serializable field mapping.
func (a *Amenity) Record() Record {
	r := a.record()
	r["name"] = a.Name
	return r
}

// Clone returns a copy.
func (a *Amenity) Clone() *Amenity {
	c := *a
	return &c
}
