package users

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/userbase/internal/platform/httpx"
)

// Service handles user business logic. It is the only component that
// mutates the store, enforcing field validation and email uniqueness.
type Service struct {
	store    *Store
	validate *validator.Validate
}

// NewService builds a Service instance owning the given store.
func NewService(store *Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
	}
}

// ListAll returns every record ordered by name ascending, ties broken by id.
func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	list := s.store.All()
	sortByName(list)
	return list, nil
}

// GetByID retrieves a user by id.
func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	u, ok := s.store.Get(id)
	if !ok {
		return User{}, fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
	}
	return u, nil
}

// Create validates the request, enforces email uniqueness and inserts the
// record. The uniqueness check and insert run inside one critical section
// so concurrent creates cannot both claim the same email.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	var created User
	err := s.store.Mutate(func(tx *Tx) error {
		if _, taken := tx.FindByEmail(req.Email); taken {
			return fmt.Errorf("%w: email already in use", httpx.ErrDuplicate)
		}
		created = tx.Insert(User{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Website: req.Website,
			Company: req.Company,
		})
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return created, nil
}

// Update validates the request and overwrites the mutable fields of an
// existing record. Uniqueness is re-checked only when the email changes
// case-insensitively, and only against other records, so updating a user
// to its own current email never conflicts.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	var updated User
	err := s.store.Mutate(func(tx *Tx) error {
		current, ok := tx.Get(id)
		if !ok {
			return fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
		}
		if !strings.EqualFold(current.Email, req.Email) {
			if other, taken := tx.FindByEmail(req.Email); taken && other.ID != id {
				return fmt.Errorf("%w: email already in use", httpx.ErrDuplicate)
			}
		}
		candidate := current
		candidate.Name = req.Name
		candidate.Email = req.Email
		candidate.Phone = req.Phone
		candidate.Website = req.Website
		candidate.Company = req.Company
		if !tx.Replace(candidate) {
			return fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
		}
		u, _ := tx.Get(id)
		updated = u
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return updated, nil
}

// Delete removes the record for id. Deleting an absent id reports NotFound;
// a second delete of the same id reports the same, so the effect is
// idempotent.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var existed bool
	_ = s.store.Mutate(func(tx *Tx) error {
		existed = tx.Remove(id)
		return nil
	})
	if !existed {
		return fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
	}
	return nil
}

// Search returns, in ListAll order, every record whose name, email or
// company contains term case-insensitively. A blank term behaves exactly
// like ListAll.
func (s *Service) Search(ctx context.Context, term string) ([]User, error) {
	if strings.TrimSpace(term) == "" {
		return s.ListAll(ctx)
	}
	needle := strings.ToLower(term)
	matched := []User{}
	for _, u := range s.store.All() {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			(u.Company != "" && strings.Contains(strings.ToLower(u.Company), needle)) {
			matched = append(matched, u)
		}
	}
	sortByName(matched)
	return matched, nil
}

// sortByName orders records by collated name ascending, ties by id.
func sortByName(list []User) {
	c := collate.New(language.Und)
	sort.Slice(list, func(i, j int) bool {
		if r := c.CompareString(list[i].Name, list[j].Name); r != 0 {
			return r < 0
		}
		return list[i].ID < list[j].ID
	})
}
