package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrReminderNotFound = errors.New("reminder not found")

type Repository interface {
	Store(ctx context.Context, userId int, rem Reminder) (int, error)
	FindAll(ctx context.Context, userId int) ([]Reminder, error)
	GetByUid(ctx context.Context, userId int, uid string) (Reminder, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const reminderColumns = "id, uid, title, amount, category, date, is_recurring, created_at"

func (r *RepositoryImpl) Store(ctx context.Context, userId int, rem Reminder) (int, error) {
	query := `INSERT INTO reminder (uid, user_id, title, amount, category, date, is_recurring)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		rem.Uid, userId, rem.Title, rem.Amount, string(rem.Category), rem.Date, rem.IsRecurring,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert reminder: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) FindAll(ctx context.Context, userId int) ([]Reminder, error) {
	query := fmt.Sprintf(`SELECT %s FROM reminder WHERE user_id = $1 ORDER BY date`, reminderColumns)

	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query reminders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, userId int, uid string) (Reminder, error) {
	query := fmt.Sprintf(`SELECT %s FROM reminder WHERE user_id = $1 AND uid = $2`, reminderColumns)

	rem, err := scanReminder(r.db.QueryRow(ctx, query, userId, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return Reminder{}, ErrReminderNotFound
	} else if err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := `DELETE FROM reminder WHERE user_id = $1 AND uid = $2`

	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete reminder: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (Reminder, error) {
	var rem Reminder
	var cat string
	err := row.Scan(&rem.Id, &rem.Uid, &rem.Title, &rem.Amount, &cat, &rem.Date, &rem.IsRecurring, &rem.CreatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Errorf("could not scan reminder: %v", err)
		}
		return Reminder{}, err
	}
	rem.Category = category.Category(cat)
	return rem, nil
}
