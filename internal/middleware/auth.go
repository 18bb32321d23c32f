package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/config"
	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
)

const ContextActor = "actor"

var (
	errMissingHeader = errors.New("missing_authorization_header")
	errBadHeader     = errors.New("invalid_authorization_header")
	errBadToken      = errors.New("invalid_token")
	errBadPayload    = errors.New("invalid_token_payload")
	errBadRole       = errors.New("invalid_token_role")
)

// AuthMiddleware validates the bearer token issued by the auth service and
// stores the caller as a domain.Actor. Expected claims: sub, barbershopId
// and role (owner, barber, staff or customer).
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))
	key := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		actor, err := actorFromHeader(parser, key, c.GetHeader("Authorization"))
		if err != nil {
			c.Abort()
			httperr.Unauthorized(c, err.Error(), "Token inválido ou ausente.")
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

func actorFromHeader(parser *jwt.Parser, key []byte, header string) (domain.Actor, error) {
	if header == "" {
		return domain.Actor{}, errMissingHeader
	}

	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
		return domain.Actor{}, errBadHeader
	}

	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}); err != nil {
		return domain.Actor{}, errBadToken
	}

	// JSON numbers decode as float64
	userID, ok1 := claims["sub"].(float64)
	barbershopID, ok2 := claims["barbershopId"].(float64)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || userID <= 0 || barbershopID <= 0 {
		return domain.Actor{}, errBadPayload
	}

	actor := domain.Actor{
		ID:           uint(userID),
		BarbershopID: uint(barbershopID),
		Role:         domain.Role(role),
	}
	if !actor.IsStaff() && !actor.IsCustomer() {
		return domain.Actor{}, errBadRole
	}
	return actor, nil
}

// ActorFrom returns the authenticated caller. Only valid behind
// AuthMiddleware.
func ActorFrom(c *gin.Context) domain.Actor {
	return c.MustGet(ContextActor).(domain.Actor)
}

func RequireStaff() gin.HandlerFunc {
	return requireRole(domain.Actor.IsStaff, "staff_only")
}

func RequireCustomer() gin.HandlerFunc {
	return requireRole(domain.Actor.IsCustomer, "customers_only")
}

func requireRole(allowed func(domain.Actor) bool, code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed(ActorFrom(c)) {
			c.Abort()
			httperr.Forbidden(c, code, "Acesso negado.")
			return
		}
		c.Next()
	}
}
