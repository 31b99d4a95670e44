package dashboard

import (
	"context"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/repository"
)

type StatsRepository interface {
	UserStats(ctx context.Context, userID int64, now time.Time) (*repository.UserStats, error)
	AdminStats(ctx context.Context, now time.Time) (*repository.AdminStats, error)
}

type Service struct {
	stats StatsRepository
	now   func() time.Time
}

func NewService(stats StatsRepository) *Service {
	return &Service{stats: stats, now: time.Now}
}

func (s *Service) UserStats(ctx context.Context, userID int64) (*repository.UserStats, error) {
	return s.stats.UserStats(ctx, userID, s.now().UTC())
}

func (s *Service) AdminStats(ctx context.Context) (*repository.AdminStats, error) {
	return s.stats.AdminStats(ctx, s.now().UTC())
}
