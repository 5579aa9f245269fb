package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/dto"
	"rotation-status/backend/pkg/jwt"
)

var (
	ErrInvalidPIN = errors.New("PIN 错误")
)

// AuthService PIN 校验业务接口
type AuthService interface {
	ValidatePIN(ctx context.Context, pin string) (*dto.ValidatePINResponse, error)
}

type authService struct {
	cfg    config.AuthConfig
	jwtMgr *jwt.Manager // 可为 nil：未配置 jwt_secret 时只返回 valid
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		cfg:    *cfg,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) ValidatePIN(_ context.Context, pin string) (*dto.ValidatePINResponse, error) {
	// 1. 校验 PIN：优先 bcrypt 哈希，其次明文常量时间比较
	if !s.matchPIN(pin) {
		return nil, ErrInvalidPIN
	}

	resp := &dto.ValidatePINResponse{Valid: true}
	if s.jwtMgr == nil {
		return resp, nil
	}

	// 2. 签发访问令牌
	token, err := s.jwtMgr.GenerateAccessToken()
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	resp.AccessToken = token
	resp.ExpiresIn = int(s.jwtMgr.TTL().Seconds())
	return resp, nil
}

func (s *authService) matchPIN(pin string) bool {
	if s.cfg.PINHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PINHash), []byte(pin)) == nil
	}
	if s.cfg.PIN == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.PIN), []byte(pin)) == 1
}
