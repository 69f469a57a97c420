package sysconfig

import "context"

// Repository define as operações de persistência da configuração do sistema
type Repository interface {
	FindByOwner(ctx context.Context, ownerID string) (*Config, error)
	Save(ctx context.Context, c *Config) error
}
