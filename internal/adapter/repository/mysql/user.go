package mysql

import (
	"context"

	"loanvault/internal/domain/lending"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, a *lending.UserAccount) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *UserRepository) GetByOwner(ctx context.Context, owner string) (*lending.UserAccount, error) {
	var out lending.UserAccount
	res := r.db.WithContext(ctx).Where("owner = ?", owner).First(&out)
	return &out, res.Error
}

// GetByOwnerForUpdate takes a row lock so concurrent deposits and
// originations against the same account serialize.
func (r *UserRepository) GetByOwnerForUpdate(ctx context.Context, owner string) (*lending.UserAccount, error) {
	var out lending.UserAccount
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("owner = ?", owner).
		First(&out)
	return &out, res.Error
}

func (r *UserRepository) Save(ctx context.Context, a *lending.UserAccount) error {
	return r.db.WithContext(ctx).Save(a).Error
}
