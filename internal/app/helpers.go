package app

import (
	"os"
	"strings"

	"github.com/formify/core/internal/config"
	jwtpkg "github.com/formify/core/internal/pkg/jwt"
	"github.com/formify/core/internal/pkg/nativelog"
	"go.uber.org/zap"
)

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) {
	if dir := cfg.LogDir(); dir != "" {
		_ = os.Setenv(nativelog.EnvLogDir, dir)
	}
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}
}
