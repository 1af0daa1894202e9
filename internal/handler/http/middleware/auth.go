package middleware

import (
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/domain/auth"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Identity is the authenticated caller, pulled from the access token.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   user.Role
}

// IdentityFromRequest extracts the caller identity from verified
// claims. Only valid behind AuthRequired.
func IdentityFromRequest(r *http.Request) (Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, auth.ErrInvalidToken
	}

	identity := Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = user.Role(role)
	}
	return identity, nil
}
