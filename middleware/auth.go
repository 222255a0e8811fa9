package middleware

import (
	"errors"
	"os"
	"strings"
	"sync"

	"estate-access/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// Actor is the authenticated caller resolved from an externally issued
// token: tenant scope, role and the guard/resident linkage. Identity and
// session issuance live in the external identity service; this middleware
// only verifies and unpacks.
type Actor struct {
	TenantID   uint
	Role       string
	GuardID    uint
	GuardName  string
	ResidentID uint
	Name       string
	Phone      string
}

// Claims is the JWT payload agreed with the identity service.
type Claims struct {
	TenantID    uint     `json:"tenant_id"`
	Role        string   `json:"role"`
	GuardID     uint     `json:"guard_id,omitempty"`
	ResidentID  uint     `json:"resident_id,omitempty"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone,omitempty"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

var (
	secretOnce sync.Once
	jwtSecret  []byte
	secretErr  error
)

func loadJWTSecret() error {
	secretOnce.Do(func() {
		sec := os.Getenv("JWT_SECRET_KEY")
		if strings.TrimSpace(sec) == "" {
			sec = os.Getenv("JWT_SECRET")
		}
		if strings.TrimSpace(sec) == "" {
			secretErr = errors.New("JWT secret not configured (set JWT_SECRET_KEY or JWT_SECRET)")
			return
		}
		jwtSecret = []byte(sec)
	})
	return secretErr
}

// IsAuthenticated validates a Bearer token, enforces HS256, checks that the
// token carries at least one of the required permissions and stashes the
// Actor for handlers.
func IsAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := loadJWTSecret(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "server auth not configured",
			})
		}

		h := c.Get(authHeader)
		if h == "" || !strings.HasPrefix(h, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing/invalid Authorization header"})
		}
		raw := strings.TrimSpace(h[len(bearerPrefix):])

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		var claims Claims
		token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		if claims.TenantID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token missing tenant"})
		}

		if !hasAnyPermission(claims.Permissions, requiredPermissions) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "insufficient permissions"})
		}

		c.Locals("actor", Actor{
			TenantID:   claims.TenantID,
			Role:       claims.Role,
			GuardID:    claims.GuardID,
			GuardName:  claims.Name,
			ResidentID: claims.ResidentID,
			Name:       claims.Name,
			Phone:      claims.Phone,
		})
		return c.Next()
	}
}

func hasAnyPermission(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	set := make(map[string]bool, len(granted))
	for _, p := range granted {
		set[p] = true
	}
	for _, p := range required {
		if p == constants.PermAny || set[p] {
			return true
		}
	}
	return false
}

// ActorFromCtx returns the Actor stashed by IsAuthenticated.
func ActorFromCtx(c *fiber.Ctx) (Actor, bool) {
	actor, ok := c.Locals("actor").(Actor)
	return actor, ok
}
