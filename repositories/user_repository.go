package repositories

import (
	"errors"

	"gorm.io/gorm"

	"shipment-tracker/errs"
	"shipment-tracker/models"
)

// UserRepository is the repo for accessing user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository with DB dependency
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A taken email yields errs.ErrAlreadyExists.
func (r *UserRepository) Create(user *models.User) error {
	var existing models.User
	err := r.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return errs.ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(user).Error
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListNonAdmins returns all non-admin users, newest first.
func (r *UserRepository) ListNonAdmins() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("is_admin = ?", false).Order("created_at DESC").Find(&users).Error
	return users, err
}
