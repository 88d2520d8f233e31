package service

import (
	"context"
	"strconv"
	"sync"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
	"carrental-backoffice/internal/repository"
)

type settingDefault struct {
	value string
	typ   domain.SettingType
}

// Built-in defaults for the booking workflow. A missing key never resolves
// to nil: dependent calculations always see one of these values.
var settingDefaults = map[string]settingDefault{
	domain.SettingMaintenanceMode:     {"false", domain.SettingTypeBoolean},
	domain.SettingDefaultTimezone:     {"UTC", domain.SettingTypeString},
	domain.SettingCurrencySymbol:      {"$", domain.SettingTypeString},
	domain.SettingTaxRatePercent:      {"10.0", domain.SettingTypeFloat},
	domain.SettingLateFeeHourly:       {"15.00", domain.SettingTypeFloat},
	domain.SettingMinBookingHours:     {"4", domain.SettingTypeInteger},
	domain.SettingRentalBufferHours:   {"2", domain.SettingTypeInteger},
	domain.SettingAdvanceNoticeHours:  {"1", domain.SettingTypeInteger},
	domain.SettingEmailSenderAddress:  {"noreply@domain.com", domain.SettingTypeString},
	domain.SettingEmailAdminAlertAddr: {"admin@domain.com", domain.SettingTypeString},
}

// settingsService caches parsed settings in memory. The cache is owned by
// the instance, guarded by a mutex, and write-through on Set so reads within
// a process always see their own writes.
type settingsService struct {
	repo     repository.SettingRepository
	activity ActivityService

	mu     sync.RWMutex
	cache  map[string]any
	loaded bool
}

func NewSettingsService(repo repository.SettingRepository, activity ActivityService) SettingsService {
	return &settingsService{repo: repo, activity: activity}
}

func (s *settingsService) Get(ctx context.Context, key string, def any) any {
	s.ensureLoaded(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.cache[key]; ok {
		return v
	}
	return def
}

func (s *settingsService) GetString(ctx context.Context, key, def string) string {
	if v, ok := s.Get(ctx, key, def).(string); ok {
		return v
	}
	return def
}

func (s *settingsService) GetBool(ctx context.Context, key string, def bool) bool {
	if v, ok := s.Get(ctx, key, def).(bool); ok {
		return v
	}
	return def
}

func (s *settingsService) GetInt(ctx context.Context, key string, def int) int {
	if v, ok := s.Get(ctx, key, def).(int); ok {
		return v
	}
	return def
}

func (s *settingsService) GetFloat(ctx context.Context, key string, def float64) float64 {
	if v, ok := s.Get(ctx, key, def).(float64); ok {
		return v
	}
	return def
}

func (s *settingsService) Set(ctx context.Context, actor domain.Actor, key, value string, typ domain.SettingType) error {
	// Load before writing so the cache update survives; a later first read
	// would otherwise rebuild the cache from storage and drop this entry.
	s.ensureLoaded(ctx)

	setting := &domain.Setting{Key: key, Value: value, Type: typ}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = parseSettingValue(value, typ)
	s.mu.Unlock()

	if s.activity != nil {
		s.activity.Log(ctx, actor, domain.ActionUpdateSetting, "Updated setting "+key, map[string]any{
			"key":   key,
			"value": value,
			"type":  string(typ),
		})
	}
	return nil
}

func (s *settingsService) All(ctx context.Context) map[string]any {
	s.ensureLoaded(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.cache))
	for k, v := range s.cache {
		out[k] = v
	}
	return out
}

// ClearCache forces a reload on next access. Required after out-of-band
// database edits; other processes must call this themselves.
func (s *settingsService) ClearCache() {
	s.mu.Lock()
	s.cache = nil
	s.loaded = false
	s.mu.Unlock()
}

// InitializeDefaults persists any built-in default missing from storage.
func (s *settingsService) InitializeDefaults(ctx context.Context) error {
	for key, def := range settingDefaults {
		existing, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.repo.Upsert(ctx, &domain.Setting{Key: key, Value: def.value, Type: def.typ}); err != nil {
			return err
		}
	}
	s.ClearCache()
	return nil
}

func (s *settingsService) MaintenanceMode(ctx context.Context) bool {
	return s.GetBool(ctx, domain.SettingMaintenanceMode, false)
}

func (s *settingsService) CurrencySymbol(ctx context.Context) string {
	return s.GetString(ctx, domain.SettingCurrencySymbol, "$")
}

func (s *settingsService) TaxRatePercent(ctx context.Context) float64 {
	return s.GetFloat(ctx, domain.SettingTaxRatePercent, 10.0)
}

func (s *settingsService) RentalBufferHours(ctx context.Context) int {
	return s.GetInt(ctx, domain.SettingRentalBufferHours, 2)
}

func (s *settingsService) AdvanceNoticeHours(ctx context.Context) int {
	return s.GetInt(ctx, domain.SettingAdvanceNoticeHours, 1)
}

func (s *settingsService) AdminAlertAddress(ctx context.Context) string {
	return s.GetString(ctx, domain.SettingEmailAdminAlertAddr, "admin@domain.com")
}

func (s *settingsService) ensureLoaded(ctx context.Context) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}

	cache := make(map[string]any, len(settingDefaults))
	stored, err := s.repo.List(ctx)
	if err != nil {
		// Serve defaults; the next access retries the load.
		logger.Error("settings load failed, serving defaults", "error", err)
	}
	for _, setting := range stored {
		cache[setting.Key] = parseSettingValue(setting.Value, setting.Type)
	}
	for key, def := range settingDefaults {
		if _, ok := cache[key]; !ok {
			cache[key] = parseSettingValue(def.value, def.typ)
		}
	}

	s.cache = cache
	s.loaded = err == nil
}

func parseSettingValue(value string, typ domain.SettingType) any {
	switch typ {
	case domain.SettingTypeBoolean:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		return parsed
	case domain.SettingTypeInteger:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return parsed
	case domain.SettingTypeFloat:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0.0
		}
		return parsed
	default:
		return value
	}
}
