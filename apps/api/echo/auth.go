package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ifag/portal/core"
)

const (
	contextTokenKey   = "userToken"
	contextStudentKey = "studentID"

	RoleStudent = "student"
	RoleAdmin   = "admin"
)

func newJWTConfig(secret string) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(secret),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
// The subject is the student id for students and the username for admins.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsAdmin   bool   `json:"is_admin,omitempty"`   // -> ADMIN PORTAL
}

func (c Claims) Role() string {
	switch {
	case c.IsAdmin:
		return RoleAdmin
	case c.IsStudent:
		return RoleStudent
	}
	return ""
}

// StudentID returns the id of the authenticated student, if any.
func (c Claims) StudentID() (int64, bool) {
	if !c.IsStudent {
		return 0, false
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func newClaims(conf *core.Config, subject string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   subject,
			Audience:  "Portal",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
	}
}

func GetStudentClaims(conf *core.Config, studentID int64) *Claims {
	claims := newClaims(conf, strconv.FormatInt(studentID, 10))
	claims.IsStudent = true
	return claims
}

func GetAdminClaims(conf *core.Config, username string) *Claims {
	claims := newClaims(conf, username)
	claims.Username = username
	claims.IsAdmin = true
	return claims
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims, secret string) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextStudentID(ctx echo.Context) (int64, error) {
	if id, ok := ctx.Get(contextStudentKey).(int64); ok {
		return id, nil
	}
	return 0, errHttpNotFound
}
