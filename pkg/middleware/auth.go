package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Claims identifies the caller. Email is the requester identity used for
// booking ownership.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer}
}

// IssueToken signs an HS256 token for the given identity.
func (a *Authenticator) IssueToken(email string, role Role, ttl time.Duration) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	now := time.Now()
	claims := Claims{
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Email == "" || !claims.Role.Valid() {
		return nil, errors.New("token is missing email or role")
	}
	return claims, nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// verified claims on the request context.
func Authenticate(auth *Authenticator, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				rejectUnauthorized(w, log, r, "missing bearer token", nil)
				return
			}

			claims, err := auth.Parse(tokenString)
			if err != nil {
				rejectUnauthorized(w, log, r, "invalid bearer token", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string, err error) {
	log.Warn("Unauthorized request",
		"request_id", requestID(r),
		"path", r.URL.Path,
		"method", r.Method,
		"reason", reason,
		"error", err,
	)
	if writeErr := apperrors.WriteProblem(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
		log.Error("failed to write error response", "operation", "WriteProblem", "error", writeErr)
	}
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// RequireRole wraps a single route handler.
func RequireRole(role Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := authorize(r, role); err != nil {
			_ = apperrors.WriteProblem(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoleParams is RequireRole for httprouter handles.
func RequireRoleParams(role Role, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if err := authorize(r, role); err != nil {
			_ = apperrors.WriteProblem(w, err)
			return
		}
		next(w, r, ps)
	}
}

func authorize(r *http.Request, role Role) error {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return apperrors.Unauthorized("Authentication required")
	}
	if claims.Role != role {
		return apperrors.Forbidden("Insufficient role for this operation")
	}
	return nil
}
