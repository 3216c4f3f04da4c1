package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertRepo interface {
	// InsertIfAbsent persists the alert unless one already exists for the
	// same (user, category, month, year, type) tuple. It is a single atomic
	// statement, so two concurrent writers can never both create one. The
	// returned bool reports whether a row was created.
	InsertIfAbsent(ctx context.Context, userId int, alert BudgetAlert) (BudgetAlert, bool, error)
	FindForMonth(ctx context.Context, userId int, month string, year int) ([]BudgetAlert, error)
	// Find lists alerts newest first, optionally filtered by read state,
	// capped at limit.
	Find(ctx context.Context, userId int, isRead *bool, limit int) ([]BudgetAlert, error)
	MarkRead(ctx context.Context, userId int, uid string) (BudgetAlert, error)
}

type AlertRepoImpl struct {
	db *pgxpool.Pool
}

func NewAlertRepo(db *pgxpool.Pool) *AlertRepoImpl {
	return &AlertRepoImpl{db: db}
}

const alertColumns = "id, uid, category, budget_goal, current_spent, percentage, alert_type, message, is_read, month, year, created_at"

func (r *AlertRepoImpl) InsertIfAbsent(ctx context.Context, userId int, alert BudgetAlert) (BudgetAlert, bool, error) {
	query := `INSERT INTO budget_alert (
                    uid,
                    user_id,
                    category,
                    budget_goal,
                    current_spent,
                    percentage,
                    alert_type,
                    message,
                    is_read,
                    month,
                    year
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10)
				ON CONFLICT (user_id, category, month, year, alert_type) DO NOTHING
				RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		alert.Uid,
		userId,
		string(alert.Category),
		alert.BudgetGoal,
		alert.CurrentSpent,
		alert.Percentage,
		string(alert.Type),
		alert.Message,
		alert.Month,
		alert.Year,
	).Scan(&alert.Id, &alert.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// an alert for this tuple already exists, its snapshot stays untouched
		return BudgetAlert{}, false, nil
	} else if err != nil {
		err := fmt.Errorf("could not insert alert: %w", err)
		log.Error(err)
		return BudgetAlert{}, false, err
	}
	return alert, true, nil
}

func (r *AlertRepoImpl) FindForMonth(ctx context.Context, userId int, month string, year int) ([]BudgetAlert, error) {
	query := fmt.Sprintf(`SELECT %s FROM budget_alert
              WHERE user_id = $1 AND month = $2 AND year = $3
              ORDER BY created_at DESC`, alertColumns)
	rows, err := r.db.Query(ctx, query, userId, month, year)
	if err != nil {
		err := fmt.Errorf("could not query alerts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (r *AlertRepoImpl) Find(ctx context.Context, userId int, isRead *bool, limit int) ([]BudgetAlert, error) {
	query := fmt.Sprintf("SELECT %s FROM budget_alert WHERE user_id = $1", alertColumns)
	args := []any{userId}
	if isRead != nil {
		args = append(args, *isRead)
		query += " AND is_read = $2"
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query alerts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (r *AlertRepoImpl) MarkRead(ctx context.Context, userId int, uid string) (BudgetAlert, error) {
	query := fmt.Sprintf(`UPDATE budget_alert SET is_read = true
              WHERE uid = $1 AND user_id = $2
              RETURNING %s`, alertColumns)
	alert, err := scanAlert(r.db.QueryRow(ctx, query, uid, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return BudgetAlert{}, ErrAlertNotFound
	} else if err != nil {
		err := fmt.Errorf("could not mark alert as read: %w", err)
		log.Error(err)
		return BudgetAlert{}, err
	}
	return alert, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (BudgetAlert, error) {
	var alert BudgetAlert
	var cat, alertType string
	if err := row.Scan(
		&alert.Id,
		&alert.Uid,
		&cat,
		&alert.BudgetGoal,
		&alert.CurrentSpent,
		&alert.Percentage,
		&alertType,
		&alert.Message,
		&alert.IsRead,
		&alert.Month,
		&alert.Year,
		&alert.CreatedAt,
	); err != nil {
		return BudgetAlert{}, err
	}
	alert.Category = category.Category(cat)
	alert.Type = AlertType(alertType)
	return alert, nil
}

func scanAlerts(rows pgx.Rows) ([]BudgetAlert, error) {
	var alerts []BudgetAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			err := fmt.Errorf("could not scan alert: %w", err)
			log.Error(err)
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return alerts, nil
}
