package google

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/pkg/reminder"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

type CalendarItem struct {
	ID      string
	Summary string
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	// ExportReminder creates a Google Calendar event for the reminder. A
	// recurring reminder becomes a monthly recurring event.
	ExportReminder(ctx context.Context, calendarId string, reminderUid string) (string, error)
}

type ServiceImpl struct {
	auth      *GoogleAuth
	reminders reminder.Service
}

func NewService(auth *GoogleAuth, reminders reminder.Service) *ServiceImpl {
	return &ServiceImpl{auth: auth, reminders: reminders}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var googleCalendars []CalendarItem
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

func (s *ServiceImpl) ExportReminder(ctx context.Context, calendarId string, reminderUid string) (string, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}

	rem, err := s.reminders.Get(ctx, reminderUid)
	if err != nil {
		return "", err
	}

	googleService, err := s.prepareGoogleService(ctx, currentUser.Id)
	if err != nil {
		return "", err
	}

	currency := currentUser.Currency
	if currency == "" {
		currency = user.DefaultCurrency
	}
	date := rem.Date.Format("2006-01-02")
	event := &calendar.Event{
		Summary:     rem.Title,
		Description: fmt.Sprintf("Payment reminder: %s%g (%s)", currency, rem.Amount, rem.Category),
		Start:       &calendar.EventDateTime{Date: date},
		End:         &calendar.EventDateTime{Date: date},
	}
	if rem.IsRecurring {
		event.Recurrence = []string{"RRULE:FREQ=MONTHLY"}
	}

	created, err := googleService.Events.Insert(calendarId, event).Do()
	if err != nil {
		err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
		log.Error(err)
		return "", err
	}
	log.Debugf("Exported reminder %s as calendar event %s", rem.Uid, created.Id)
	return created.Id, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
