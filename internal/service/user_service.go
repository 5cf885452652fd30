package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/repository"
)

// CreateUserInput contains the data needed to create a new user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	// Password is optional. When set it must be at least 8 characters.
	Password string
	IsAdmin  bool
}

// CreateUser registers a user. The email must not belong to another user.
func (f *Facade) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	// bcrypt is slow; hash before taking the lock. A hashing error is reported
	// only after the checks below so duplicates and field errors still come first.
	var hash string
	var hashErr error
	if input.Password != "" {
		hash, hashErr = f.hashPassword(input.Password)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Check uniqueness before anything is constructed
	if _, exists := f.users.GetByAttribute(ctx, "email", input.Email); exists {
		f.logger.Debug().Str("email", input.Email).Msg("duplicate email on create")
		return nil, domain.NewDomainError(domain.ErrDuplicateEmail, "email already registered", input.Email)
	}

	user, err := domain.NewUser(input.FirstName, input.LastName, input.Email, input.IsAdmin)
	if err != nil {
		return nil, err
	}

	if hashErr != nil {
		return nil, hashErr
	}
	if hash != "" {
		user.SetPasswordHash(hash)
	}

	if err := f.users.Add(ctx, user); err != nil {
		f.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to store user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	f.logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Bool("is_admin", user.IsAdmin).
		Msg("user created")

	return user, nil
}

// GetUser retrieves a user by id.
func (f *Facade) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users.Get(ctx, id)
	if !ok {
		return nil, notFound("user", id)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by exact email.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.users.GetByAttribute(ctx, "email", email)
	if !ok {
		return nil, notFound("user", email)
	}
	return user, nil
}

// ListUsers returns all users in creation order.
func (f *Facade) ListUsers(ctx context.Context) []*domain.User {
	return f.users.GetAll(ctx)
}

// UpdateUser applies a partial update. Recognized keys are first_name, last_name,
// email, is_admin and password; the rest are ignored.
func (f *Facade) UpdateUser(ctx context.Context, id string, fields domain.Fields) (*domain.User, error) {
	// Hash outside the lock, as in CreateUser.
	var hash string
	var hashErr error
	if raw, ok := fields["password"]; ok {
		var password string
		if password, hashErr = domain.ValidatePassword(raw); hashErr == nil {
			hash, hashErr = f.hashPassword(password)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.users.Exists(ctx, id) {
		return nil, notFound("user", id)
	}

	if raw, ok := fields["email"]; ok {
		// A malformed email is reported by the entity itself.
		if email, err := domain.ValidateEmail(raw); err == nil {
			if other, exists := f.users.GetByAttribute(ctx, "email", email); exists && other.ID != id {
				return nil, domain.NewDomainError(domain.ErrDuplicateEmail, "email already registered", email)
			}
		}
	}
	if hashErr != nil {
		return nil, hashErr
	}

	var updated *domain.User
	err := f.users.UpdateWith(ctx, id, func(u *domain.User) error {
		if err := u.Update(fields); err != nil {
			return err
		}
		if hash != "" {
			u.SetPasswordHash(hash)
		}
		updated = u.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user", id)
		}
		return nil, err
	}

	f.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// DeleteUser removes a user. Users that own places or wrote reviews cannot be
// deleted. Deleting a missing id is a no-op.
func (f *Facade) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.users.Exists(ctx, id) {
		return nil
	}
	if len(f.places.FilterByAttribute(ctx, "owner_id", id)) > 0 {
		return stillReferenced("user owns places", id)
	}
	if len(f.reviews.FilterByAttribute(ctx, "user_id", id)) > 0 {
		return stillReferenced("user has written reviews", id)
	}

	f.users.Delete(ctx, id)
	f.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Authenticate verifies credentials. Unknown emails, users without a password
// and wrong passwords all yield domain.ErrInvalidCredentials.
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, ok := f.users.GetByAttribute(ctx, "email", email)
	if !ok || !user.HasPassword() {
		// Log but don't expose whether the email exists
		f.logger.Debug().Str("email", email).Msg("user not found during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	if err := f.hasher.Compare(user.PasswordHash, password); err != nil {
		f.logger.Debug().Err(err).Str("user_id", user.ID).Msg("invalid password during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	f.logger.Info().Str("user_id", user.ID).Msg("user authenticated")
	return user, nil
}

func (f *Facade) hashPassword(password string) (string, error) {
	if _, err := domain.ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := f.hasher.Hash(password)
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to hash password")
		return "", fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}
	return hash, nil
}
