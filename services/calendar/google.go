package calendar

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// GoogleCalendar implements Authority against the operator's primary
// Google Calendar. The operator authorizes once through the consent
// flow; the refresh token is persisted and reused afterward.
type GoogleCalendar struct {
	oauth   *oauth2.Config
	tokens  *TokenStore
	loc     *time.Location
	span    int // appointment length in whole hours
	company string
}

// Config carries the settings for the Google Calendar integration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenFile    string
	Timezone     string
	SpanHours    int
	CompanyName  string
}

// NewGoogleCalendar returns the calendar authority, or (nil, nil) when
// no client credentials are configured — the integration is optional
// and callers branch on presence.
func NewGoogleCalendar(cfg Config) (*GoogleCalendar, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar: load timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.SpanHours < 1 {
		cfg.SpanHours = 1
	}
	return &GoogleCalendar{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{gcal.CalendarScope},
			Endpoint:     google.Endpoint,
		},
		tokens:  NewTokenStore(cfg.TokenFile),
		loc:     loc,
		span:    cfg.SpanHours,
		company: cfg.CompanyName,
	}, nil
}

// AuthURL is the consent URL the operator visits once to grant access.
// Offline access with forced consent so a refresh token is returned.
func (g *GoogleCalendar) AuthURL() string {
	return g.oauth.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// HandleCallback exchanges the consent code for tokens and saves them.
func (g *GoogleCalendar) HandleCallback(ctx context.Context, code string) error {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("calendar: token exchange: %w", err)
	}
	return g.tokens.Save(tok)
}

// Connected reports whether the operator has authorized the calendar.
func (g *GoogleCalendar) Connected() bool {
	return g.tokens.Load() != nil
}

func (g *GoogleCalendar) service(ctx context.Context) (*gcal.Service, error) {
	tok := g.tokens.Load()
	if tok == nil {
		return nil, fmt.Errorf("calendar: not authorized yet")
	}
	src := &persistingTokenSource{
		src:   g.oauth.TokenSource(ctx, tok),
		store: g.tokens,
		last:  tok,
	}
	return gcal.NewService(ctx, option.WithTokenSource(src))
}

func (g *GoogleCalendar) dayBounds(date string) (time.Time, time.Time, error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, fmt.Errorf("calendar: invalid date %q", date)
	}
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])
	start := time.Date(y, time.Month(m), d, 0, 0, 0, 0, g.loc)
	return start, start.AddDate(0, 0, 1), nil
}

// CheckConflict reports whether any event overlaps the appointment
// window starting at hour on date.
func (g *GoogleCalendar) CheckConflict(ctx context.Context, date string, hour int) (bool, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return false, err
	}
	dayStart, dayEnd, err := g.dayBounds(date)
	if err != nil {
		return false, err
	}

	events, err := svc.Events.List("primary").
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("calendar: list events: %w", err)
	}

	slotStart := dayStart.Add(time.Duration(hour) * time.Hour)
	slotEnd := slotStart.Add(time.Duration(g.span) * time.Hour)
	for _, ev := range events.Items {
		if ev.Start == nil || ev.Start.DateTime == "" || ev.End == nil || ev.End.DateTime == "" {
			continue // all-day events don't hold appointment slots
		}
		evStart, err1 := time.Parse(time.RFC3339, ev.Start.DateTime)
		evEnd, err2 := time.Parse(time.RFC3339, ev.End.DateTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if evStart.Before(slotEnd) && evEnd.After(slotStart) {
			return true, nil
		}
	}
	return false, nil
}

// Reserve inserts the appointment event and returns its link. The event
// is what marks the slot taken when the calendar is the authority.
func (g *GoogleCalendar) Reserve(ctx context.Context, req models.BookingRequest) (string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return "", err
	}
	dayStart, _, err := g.dayBounds(req.Date)
	if err != nil {
		return "", err
	}
	hour := 0
	if req.Slot != nil {
		hour = *req.Slot
	}
	start := dayStart.Add(time.Duration(hour) * time.Hour)
	end := start.Add(time.Duration(g.span) * time.Hour)

	desc := []string{
		"Customer: " + req.Name,
		"Phone:    " + req.Phone,
	}
	if req.Email != "" {
		desc = append(desc, "Email:    "+req.Email)
	}
	desc = append(desc, "Service:  "+req.Service)
	if req.Address != "" {
		desc = append(desc, "Address:  "+req.Address)
	}
	if req.Notes != "" {
		desc = append(desc, "Notes:    "+req.Notes)
	}

	event := &gcal.Event{
		Summary:     fmt.Sprintf("%s - %s - %s", g.company, req.Service, req.Name),
		Description: strings.Join(desc, "\n"),
		Location:    req.Address,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if req.Email != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: req.Email}}
	}

	call := svc.Events.Insert("primary", event).Context(ctx)
	if req.Email != "" {
		call = call.SendUpdates("all")
	}
	created, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}
	return created.HtmlLink, nil
}
