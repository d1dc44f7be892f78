// Package api serves the tracker over HTTP for the mobile client.
package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/murojaah/internal/accounts"
	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

// Store is the persistence the API reads and writes through.
type Store interface {
	accounts.Store
	GetSettings() (models.Settings, error)
	GetDayRecord(userID, day string) (models.DayRecord, error)
	PutDayRecord(userID string, rec models.DayRecord) error
	GetDayRecords(userID, startDay, endDay string) (map[string]models.DayRecord, error)
}

type Server struct {
	app    *fiber.App
	store  Store
	dir    *accounts.Directory
	secret []byte
	now    func() time.Time
}

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithDirectory replaces the account directory built from the store.
func WithDirectory(dir *accounts.Directory) Option {
	return func(s *Server) { s.dir = dir }
}

// New builds the server and registers its routes. secret signs and
// verifies bearer tokens.
func New(store Store, secret []byte, opts ...Option) *Server {
	s := &Server{
		store:  store,
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dir == nil {
		s.dir = accounts.NewDirectory(store, accounts.WithClock(s.now))
	}

	s.app = fiber.New(fiber.Config{
		AppName:               constants.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(s.requestLog)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	v1 := s.app.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", s.register)
	auth.Post("/login", s.login)
	auth.Post("/logout", s.authenticate, s.logout)

	v1.Get("/me", s.authenticate, s.me)
	v1.Get("/today", s.authenticate, s.getToday)
	v1.Put("/today", s.authenticate, s.putToday)
	v1.Get("/stats", s.authenticate, s.stats)
	v1.Get("/month", s.authenticate, s.month)
	v1.Get("/prayer", s.authenticate, s.prayer)
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	logger.Info("API listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// settings returns stored settings, or the defaults when they cannot be read.
func (s *Server) settings() models.Settings {
	settings, err := s.store.GetSettings()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load settings", "error", err)
		}
		return models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)
	return settings
}

func (s *Server) sessionTTL() time.Duration {
	hours := s.settings().SessionTTLHours
	if hours <= 0 {
		return constants.DefaultSessionTTL
	}
	return time.Duration(hours) * time.Hour
}

// language picks the message language: ?lang, then Accept-Language, then
// the configured default.
func (s *Server) language(c *fiber.Ctx) constants.Language {
	for _, candidate := range []string{c.Query("lang"), c.Get(fiber.HeaderAcceptLanguage)} {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		switch {
		case strings.HasPrefix(candidate, string(constants.LangEnglish)):
			return constants.LangEnglish
		case strings.HasPrefix(candidate, string(constants.LangIndonesian)):
			return constants.LangIndonesian
		}
	}
	return constants.Language(s.settings().Language)
}

func (s *Server) requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logger.Info("Request", "method", c.Method(), "path", c.Path(),
		"status", c.Response().StatusCode(), "dur", time.Since(start))
	return err
}
