package echoapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/admin"
	"github.com/ifag/portal/core/schedule"
	"github.com/ifag/portal/core/student"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Conf           *core.Config
		Logger         core.Logger
		DB             core.DBPinger
		StudentSvc     student.Service
		AdminSvc       admin.Service
		ScheduleSvc    schedule.Service
		Validate       *validator.Validate
		Translator     ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		opts   *Options
		app    *echo.Echo
		jwt    middleware.JWTConfig
		errors chan error
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:   opts,
		app:    echo.New(),
		jwt:    newJWTConfig(opts.Conf.SecretKey),
		errors: make(chan error, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	s.app.GET("/health", s.health)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.jwt)

	registerStudentAPI(v1, jwt, s.opts.StudentSvc)
	registerAdminAPI(v1, jwt, s.opts.AdminSvc, s.opts.Validate)
	registerScheduleAPI(v1, jwt, s.opts.ScheduleSvc, s.opts.Validate)
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the IFAG portal API!")
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (s *server) health(ctx echo.Context) error {
	if s.opts.DB == nil {
		return ctx.JSON(http.StatusOK, healthResponse{Status: "skipped", Message: "no database configured"})
	}
	c, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()
	if err := s.opts.DB.PingContext(c); err != nil {
		s.opts.Logger.Error("DB check failed", err)
		return ctx.JSON(http.StatusInternalServerError, healthResponse{Status: "error", Message: "DB check failed"})
	}
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
