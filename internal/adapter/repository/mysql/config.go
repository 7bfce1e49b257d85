package mysql

import (
	"context"

	"loanvault/internal/domain/lending"
	"loanvault/pkg/id"

	"gorm.io/gorm"
)

type ConfigRepository struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) *ConfigRepository { return &ConfigRepository{db: db} }

// SingletonConfigID is the derived key of the one config row per deployment.
func SingletonConfigID() string { return id.Derive32("config") }

func (r *ConfigRepository) Get(ctx context.Context) (*lending.ProtocolConfig, error) {
	var out lending.ProtocolConfig
	res := r.db.WithContext(ctx).Where("config_id = ?", SingletonConfigID()).First(&out)
	return &out, res.Error
}

func (r *ConfigRepository) Create(ctx context.Context, c *lending.ProtocolConfig) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConfigRepository) Save(ctx context.Context, c *lending.ProtocolConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}
