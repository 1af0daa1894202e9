package auth

import (
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, email string, googleID string, name string, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest, sessionReq SessionTrackingRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
