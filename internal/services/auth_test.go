package services

import (
	"testing"

	"github.com/notevault/notevault/internal/config"
)

func TestAccessTokenTTLHours(t *testing.T) {
	saved := config.GlobalConfig
	defer func() { config.GlobalConfig = saved }()

	config.GlobalConfig = nil
	if got := accessTokenTTLHours(); got != 24 {
		t.Errorf("without config, TTL = %d, expected 24", got)
	}

	config.GlobalConfig = &config.Config{JWT: config.JWTConfig{ExpireHour: 2}}
	if got := accessTokenTTLHours(); got != 2 {
		t.Errorf("with expire_hour 2, TTL = %d, expected 2", got)
	}

	config.GlobalConfig = &config.Config{JWT: config.JWTConfig{ExpireHour: 0}}
	if got := accessTokenTTLHours(); got != 24 {
		t.Errorf("zero expire_hour should fall back to 24, got %d", got)
	}
}
