// Package authz decides back-office access with Casbin. Sessions map to a single subject:
// role:admin for administrators, role:customer for signed-in customers, anonymous otherwise.
package authz

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"

	"neotech/internal/auth"
	"neotech/internal/errors"
	"neotech/internal/logging"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

const (
	SubjectAdmin     = "role:admin"
	SubjectCustomer  = "role:customer"
	SubjectAnonymous = "anonymous"
)

// Enforcer wraps the Casbin enforcer.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// NewEnforcer builds an enforcer from the embedded model and policy.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := loadPolicy(e, embeddedPolicy); err != nil {
		return nil, err
	}
	return &Enforcer{enforcer: e}, nil
}

func loadPolicy(e *casbin.Enforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := e.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := e.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", parts[1:], err)
			}
		}
	}
	return nil
}

// Subject maps a session to its policy subject.
func Subject(session *auth.Session) string {
	switch {
	case !session.Authenticated():
		return SubjectAnonymous
	case session.User.IsAdmin:
		return SubjectAdmin
	default:
		return SubjectCustomer
	}
}

// Allowed reports whether subject may perform method on path.
func (e *Enforcer) Allowed(subject, path, method string) (bool, error) {
	ok, err := e.enforcer.Enforce(subject, path, method)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	return ok, nil
}

// RequireAdmin answers 403 for every request the policy does not allow. It never redirects.
func (e *Enforcer) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := Subject(auth.FromContext(c))
			ok, err := e.Allowed(subject, c.Request().URL.Path, c.Request().Method)
			if err != nil {
				logging.Ctx(c.Request().Context()).Error().Err(err).Msg("authorization check failed")
			}
			if !ok {
				return c.JSON(http.StatusForbidden, errors.ErrorResponse{
					Error: "Admin only",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
