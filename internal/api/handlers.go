package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/murojaah/internal/accounts"
	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/motivation"
	"github.com/julianstephens/murojaah/internal/prayer"
	"github.com/julianstephens/murojaah/internal/session"
	"github.com/julianstephens/murojaah/internal/utils"
)

type credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	acct, err := s.dir.Register(body.Email, body.Password, body.DisplayName)
	if err != nil {
		return s.authFailure(c, accounts.OpSignUp, err)
	}
	return s.issue(c, fiber.StatusCreated, acct)
}

func (s *Server) login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	acct, err := s.dir.SignIn(body.Email, body.Password)
	if err != nil {
		return s.authFailure(c, accounts.OpSignIn, err)
	}
	return s.issue(c, fiber.StatusOK, acct)
}

func (s *Server) issue(c *fiber.Ctx, status int, acct models.Account) error {
	token, err := session.Sign(s.secret, acct, constants.AuthProviderEmail, s.now())
	if err != nil {
		return err
	}
	return c.Status(status).JSON(authResponse{Token: token, User: acct})
}

func (s *Server) logout(c *fiber.Ctx) error {
	if err := s.dir.RecordLogout(account(c).ID); err != nil {
		return s.authFailure(c, accounts.OpSignOut, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) me(c *fiber.Ctx) error {
	return c.JSON(account(c))
}

func (s *Server) tracker(c *fiber.Ctx) *ledger.Tracker {
	acct := account(c)
	return ledger.NewTracker(s.store, s.dir, acct.ID,
		ledger.WithClock(s.now), ledger.WithSignup(acct.SignupTimestamp))
}

type todayResponse struct {
	Day       string           `json:"day"`
	Completed bool             `json:"completed"`
	Note      string           `json:"note"`
	Timestamp string           `json:"timestamp,omitempty"`
	Recorded  bool             `json:"recorded"`
	Status    models.DayStatus `json:"status"`
}

func (s *Server) getToday(c *fiber.Ctx) error {
	t := s.tracker(c)
	rec, ok := t.Today()
	return c.JSON(todayResponse{
		Day:       t.TodayKey(),
		Completed: rec.Completed,
		Note:      rec.Note,
		Timestamp: rec.Timestamp,
		Recorded:  ok,
		Status:    t.Status(t.Now()),
	})
}

type todayRequest struct {
	Completed bool   `json:"completed"`
	Note      string `json:"note"`
}

// putToday replaces today's record. A failed write is reported through
// "recorded" rather than an error status.
func (s *Server) putToday(c *fiber.Ctx) error {
	var body todayRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	t := s.tracker(c)
	rec, ok := t.SaveToday(body.Completed, body.Note)
	if !ok {
		rec.Day = t.TodayKey()
	}
	return c.JSON(todayResponse{
		Day:       rec.Day,
		Completed: rec.Completed,
		Note:      rec.Note,
		Timestamp: rec.Timestamp,
		Recorded:  ok,
		Status:    t.Status(t.Now()),
	})
}

type motivationResponse struct {
	Daily  string          `json:"daily"`
	Weekly string          `json:"weekly"`
	Level  motivation.Tier `json:"level"`
}

type statsResponse struct {
	Today      string             `json:"today"`
	Completed  bool               `json:"completed"`
	Streak     int                `json:"streak"`
	WeeklyRate int                `json:"weekly_rate"`
	Motivation motivationResponse `json:"motivation"`
}

func (s *Server) stats(c *fiber.Ctx) error {
	t := s.tracker(c)
	sum := t.Summary()
	hour := t.Now().In(ledger.Zone).Hour()

	return c.JSON(statsResponse{
		Today:      t.TodayKey(),
		Completed:  sum.Today.Completed,
		Streak:     sum.Streak,
		WeeklyRate: sum.WeeklyRate,
		Motivation: motivationResponse{
			Daily:  motivation.Daily(sum.Today.Completed, sum.Streak, hour),
			Weekly: motivation.Weekly(sum.WeeklyRate),
			Level:  motivation.Level(sum.WeeklyRate),
		},
	})
}

type monthResponse struct {
	Month    string                      `json:"month"`
	Records  map[string]models.DayRecord `json:"records"`
	Statuses map[string]models.DayStatus `json:"statuses"`
}

func (s *Server) month(c *fiber.Ctx) error {
	t := s.tracker(c)

	month := t.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := ledger.ParseMonth(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		month = parsed
	}

	records := t.Month(month)
	return c.JSON(monthResponse{
		Month:    month.In(ledger.Zone).Format(constants.MonthFormat),
		Records:  records,
		Statuses: ledger.MonthStatuses(month, t.Signup(), t.Now(), records),
	})
}

type slotResponse struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type prayerResponse struct {
	Current          slotResponse   `json:"current"`
	Next             slotResponse   `json:"next"`
	UntilNextMinutes int            `json:"until_next_minutes"`
	Countdown        string         `json:"countdown"`
	Schedule         []slotResponse `json:"schedule"`
}

func (s *Server) prayer(c *fiber.Ctx) error {
	schedule, err := prayer.FromSettings(s.settings())
	if err != nil {
		logger.Warn("Invalid prayer schedule, using defaults", "error", err)
		schedule = prayer.DefaultSchedule()
	}

	times := make(map[prayer.Prayer]string)
	var all []slotResponse
	for _, slot := range schedule.Slots() {
		hhmm := utils.FormatMinutes(slot.Minutes)
		times[slot.Prayer] = hhmm
		all = append(all, slotResponse{Name: string(slot.Prayer), Time: hhmm})
	}

	info := schedule.At(s.now())
	return c.JSON(prayerResponse{
		Current:          slotResponse{Name: string(info.Current), Time: times[info.Current]},
		Next:             slotResponse{Name: string(info.Next), Time: times[info.Next]},
		UntilNextMinutes: int(info.UntilNext.Minutes()),
		Countdown:        utils.FormatCountdown(info.UntilNext, s.language(c)),
		Schedule:         all,
	})
}
