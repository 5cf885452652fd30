package domain

// User represents a registered user.
// Users own places and write reviews; both are tracked by id only.
type User struct {
	Entity

	// FirstName is trimmed, 1-50 characters.
	FirstName string `json:"first_name"`

	// LastName is trimmed, 1-50 characters.
	LastName string `json:"last_name"`

	// Email must match the email pattern. Unique across users (enforced by the facade).
	Email string `json:"email"`

	// IsAdmin indicates whether the user has administrative privileges.
	IsAdmin bool `json:"is_admin"`

	// PasswordHash is the bcrypt hash of the user's password. Empty if none was set.
	// This should never be exposed in API responses.
	PasswordHash string `json:"-"`

	// Places holds the ids of places owned by the user, in creation order.
	Places []string `json:"places"`

	// Reviews holds the ids of reviews written by the user, in creation order.
	Reviews []string `json:"reviews"`
}

// userFields lists the keys accepted by User.Update, in application order.
var userFields = []string{"first_name", "last_name", "email", "is_admin"}

// NewUser creates a validated User.
func NewUser(firstName, lastName, email string, isAdmin bool) (*User, error) {
	u := &User{
		Entity:  newEntity(),
		Places:  []string{},
		Reviews: []string{},
	}
	err := applyFields(Fields{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"is_admin":   isAdmin,
	}, userFields, u.set)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) set(key string, value any) error {
	var err error
	switch key {
	case "first_name":
		u.FirstName, err = ValidatePersonName(key, value)
	case "last_name":
		u.LastName, err = ValidatePersonName(key, value)
	case "email":
		u.Email, err = ValidateEmail(value)
	case "is_admin":
		u.IsAdmin, err = ValidateBool(key, value)
	}
	return err
}

// Update applies the recognized keys of fields. Either every supplied field is
// valid and UpdatedAt moves forward, or u is left untouched.
func (u *User) Update(fields Fields) error {
	next := u.Clone()
	if err := applyFields(fields, userFields, next.set); err != nil {
		return err
	}
	next.touch()
	*u = *next
	return nil
}

// SetPasswordHash replaces the stored password hash. It does not move
// UpdatedAt; callers pair it with Update.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
}

// HasPassword reports whether a password was ever set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// AddPlace records ownership of a place. Duplicates are ignored.
func (u *User) AddPlace(placeID string) {
	if ids, added := appendUnique(u.Places, placeID); added {
		u.Places = ids
		u.touch()
	}
}

// RemovePlace drops a place id if present.
func (u *User) RemovePlace(placeID string) {
	if ids, removed := removeID(u.Places, placeID); removed {
		u.Places = ids
		u.touch()
	}
}

// AddReview records authorship of a review. Duplicates are ignored.
func (u *User) AddReview(reviewID string) {
	if ids, added := appendUnique(u.Reviews, reviewID); added {
		u.Reviews = ids
		u.touch()
	}
}

// RemoveReview drops a review id if present.
func (u *User) RemoveReview(reviewID string) {
	if ids, removed := removeID(u.Reviews, reviewID); removed {
		u.Reviews = ids
		u.touch()
	}
}

// Record returns the serializable field mapping. The password hash is never included.
func (u *User) Record() Record {
	r := u.record()
	r["first_name"] = u.FirstName
	r["last_name"] = u.LastName
	r["email"] = u.Email
	r["is_admin"] = u.IsAdmin
	r["places"] = copyIDs(u.Places)
	r["reviews"] = copyIDs(u.Reviews)
	return r
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	c := *u
	c.Places = copyIDs(u.Places)
	c.Reviews = copyIDs(u.Reviews)
	return &c
}
