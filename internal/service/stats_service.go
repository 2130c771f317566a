package service

import (
	"context"
	"socialCPT/internal/repository"
)

type Stats struct {
	Users         int `json:"users"`
	Posts         int `json:"posts"`
	Notifications int `json:"notifications"`
}

type StatsService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*Stats, error) {
	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.statsRepo.CountPosts(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.statsRepo.CountNotifications(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Users:         users,
		Posts:         posts,
		Notifications: notifications,
	}, nil
}
