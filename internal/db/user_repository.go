package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"matchday-backend-go/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements UserRepository using Firestore. User
// documents are keyed by email.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new Firestore-backed user repository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user '%s': %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", email, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for '%s': %w", email, err)
	}
	user.Email = docSnap.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Email == "" {
		return errors.New("user email cannot be empty for Create operation")
	}
	// Create (not Set) so a concurrent duplicate registration fails instead of
	// silently overwriting.
	_, err := r.client.Collection(usersCollection).Doc(user.Email).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user '%s': %w", user.Email, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user '%s': %w", user.Email, err)
	}
	return nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.Email == "" {
		return errors.New("user email cannot be empty for Update operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.Email).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to update user '%s': %w", user.Email, err)
	}
	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context, statusFilter models.UserStatus) ([]*models.User, error) {
	query := r.client.Collection(usersCollection).Query
	if statusFilter != "" {
		query = query.Where("userStatus", "==", string(statusFilter))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user data (ID: %s): %w", doc.Ref.ID, err)
		}
		user.Email = doc.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

// GetByJerseyNumber returns the first non-suspended user holding the given
// jersey number, or ErrNotFound when the number is free.
func (r *firestoreUserRepository) GetByJerseyNumber(ctx context.Context, number int) (*models.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("jerseyNumber", "==", number).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query jersey number %d: %w", number, err)
		}
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user data (ID: %s): %w", doc.Ref.ID, err)
		}
		if user.UserStatus == models.UserStatusSuspended {
			continue
		}
		user.Email = doc.Ref.ID
		return &user, nil
	}
	return nil, fmt.Errorf("jersey number %d: %w", number, ErrNotFound)
}
