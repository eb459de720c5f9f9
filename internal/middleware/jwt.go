package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"media-report/internal/logger"
	"media-report/internal/model"
	"media-report/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	claimsKey  = "claims"
	accountKey = "account"

	// renew tokens with less than this left
	renewWindow = 24 * time.Hour
)

type Claims struct {
	UserID int        `json:"uid"`
	Name   string     `json:"name"`
	Team   model.Team `json:"team"`
	Staff  bool       `json:"staff"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(u *model.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: u.ID,
		Name:   u.Username,
		Team:   u.Team,
		Staff:  u.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (t *Tokens) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Denylist remembers revoked token ids until the tokens expire.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

var errRevoked = errors.New("token revoked")

// Accounts resolves the account a token was issued to.
type Accounts interface {
	ByID(ctx context.Context, id int) (*model.User, error)
}

// JWTAuth requires a valid bearer token whose account still exists. The
// account is reloaded on every request, so team and staff changes apply
// without a new login. The denylist may be nil.
func JWTAuth(tokens *Tokens, deny Denylist, accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims, err := tokens.Parse(auth[7:])
		if err == nil && deny != nil {
			var revoked bool
			revoked, err = deny.Revoked(ctx, claims.ID)
			if err == nil && revoked {
				err = errRevoked
			}
		}
		if err != nil {
			logger.FromContext(ctx).Info("auth.rejected", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		u, err := accounts.ByID(ctx, claims.UserID)
		if errors.Is(err, service.ErrNotFound) {
			logger.FromContext(ctx).Info("auth.rejected", "uid", claims.UserID, "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
			return
		}
		if err != nil {
			logger.FromContext(ctx).Error("auth.account", "uid", claims.UserID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(claimsKey, claims)
		c.Set(accountKey, u)
		c.Set("user_id", u.ID)
		c.Set("user_name", u.Username)

		if claims.ExpiresAt != nil && claims.ExpiresAt.Sub(tokens.now()) < renewWindow {
			if renewed, err := tokens.Issue(u); err == nil {
				c.Header("X-New-Token", renewed)
			}
		}

		c.Next()
	}
}

// StaffOnly must run after JWTAuth. It trusts the reloaded account, not
// the staff claim.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account loaded by JWTAuth.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

func CurrentClaims(c *gin.Context) *Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
