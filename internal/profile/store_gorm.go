package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"doctqr-server/internal/models"
)

// GormStore implements Store on the gorm MySQL connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByAccount(ctx context.Context, accountID string) (*models.MedicalProfile, error) {
	var p models.MedicalProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", accountID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &p, nil
}

func (s *GormStore) FindByPublicID(ctx context.Context, publicID string) (*models.MedicalProfile, error) {
	var p models.MedicalProfile
	if err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &p, nil
}

func (s *GormStore) Upsert(ctx context.Context, p *models.MedicalProfile) error {
	if p.ID == "" {
		if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
			return insertError(err)
		}
		return nil
	}
	// Full-replace of the clinical fields; Save keeps CreatedAt and bumps
	// UpdatedAt. PublicID and UserID are carried on the struct unchanged.
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// insertError maps a MySQL duplicate-entry failure (error 1062) onto the
// sentinel for whichever unique index rejected the row.
func insertError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		switch {
		case strings.Contains(mysqlErr.Message, "uniq_medical_profiles_public_id"):
			return ErrPublicIDTaken
		case strings.Contains(mysqlErr.Message, "uniq_medical_profiles_user_id"):
			return ErrAccountTaken
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Duplicate on an index we could not identify. Treat it as the
		// account race: the resolver re-reads and settles on the stored row.
		return ErrAccountTaken
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// GormAccounts implements AccountReader on the users table.
type GormAccounts struct {
	db *gorm.DB
}

// NewGormAccounts creates a new GormAccounts.
func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (a *GormAccounts) FindByID(ctx context.Context, accountID string) (*models.User, error) {
	var u models.User
	if err := a.db.WithContext(ctx).First(&u, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &u, nil
}
