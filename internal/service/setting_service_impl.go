package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
)

type settingService struct {
	settings repository.SettingRepo
	env      env
}

func NewSettingService(settings repository.SettingRepo, opts ...Option) SettingService {
	return &settingService{settings: settings, env: newEnv(opts)}
}

func (s *settingService) List(ctx context.Context) ([]*domain.Setting, error) {
	return s.settings.List(ctx)
}

func (s *settingService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settings.Get(ctx, key)
}

func (s *settingService) Set(ctx context.Context, key string, value json.RawMessage) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.Invalidf("setting key must not be empty")
	}
	if !json.Valid(value) {
		return nil, domain.Invalidf("setting value must be valid JSON")
	}
	setting := &domain.Setting{Key: key, Value: value, UpdatedAt: s.env.nowUTC()}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingService) Delete(ctx context.Context, key string) error {
	return s.settings.Delete(ctx, key)
}

func (s *settingService) NotificationsEnabled(ctx context.Context) (bool, error) {
	setting, err := s.settings.Get(ctx, domain.SettingNotificationsEnabled)
	if err != nil {
		if domain.IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	enabled, ok := setting.Bool()
	if !ok {
		return true, nil
	}
	return enabled, nil
}
