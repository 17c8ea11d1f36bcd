package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"service-courier-panel/internal/auth"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
)

// Identity is the authenticated principal attached to the request context.
type Identity struct {
	CourierID string
	Role      domain.Role
}

type ctxKey int

const identityKey ctxKey = iota

type tokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

type courierFinder interface {
	FirstActive(ctx context.Context) (*domain.Courier, error)
}

// Auth verifies the Bearer token and stores the courier Identity in the
// request context. Requests without a valid courier token get 401.
//
// When devFallback is enabled and no token is presented, the first active
// courier is used instead. That mode exists for local development only and
// is off by default.
type Auth struct {
	logger      logx.Logger
	tokens      tokenParser
	couriers    courierFinder
	devFallback bool
}

// NewAuth creates the auth middleware.
func NewAuth(logger logx.Logger, tokens tokenParser, couriers courierFinder, devFallback bool) *Auth {
	return &Auth{
		logger:      logger,
		tokens:      tokens,
		couriers:    couriers,
		devFallback: devFallback,
	}
}

// Handler returns chi-style middleware.
func (a *Auth) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				if id, ok := a.fallbackIdentity(r.Context()); ok {
					next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
					return
				}
				a.deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := a.tokens.Parse(raw)
			if err != nil {
				a.deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			role := domain.Role(claims.Role)
			if role != domain.RoleCourier && role != domain.RoleAdmin {
				a.deny(w, http.StatusForbidden, "courier access required")
				return
			}

			id := Identity{CourierID: claims.Subject, Role: role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func (a *Auth) fallbackIdentity(ctx context.Context) (Identity, bool) {
	if !a.devFallback || a.couriers == nil {
		return Identity{}, false
	}
	c, err := a.couriers.FirstActive(ctx)
	if err != nil || c == nil {
		return Identity{}, false
	}
	a.logger.Warn("using dev courier fallback, do not enable in production",
		logx.String("courier_id", c.ID),
	)
	return Identity{CourierID: c.ID, Role: domain.RoleCourier}, true
}

func (a *Auth) deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, `{"error":"`+msg+`"}`); err != nil {
		a.logger.Debug("auth response write failed", logx.Any("err", err))
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// WithIdentity attaches the identity to ctx. Exposed for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// CourierFrom returns the authenticated courier identity, if any.
func CourierFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
