package transaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Repository interface {
	Store(ctx context.Context, userId int, t Transaction) (int, error)
	Find(ctx context.Context, userId int, filter Filter) ([]Transaction, int, error)
	GetByUid(ctx context.Context, userId int, uid string) (Transaction, error)
	Update(ctx context.Context, userId int, t Transaction) (bool, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
	Recent(ctx context.Context, userId int, limit int) ([]Transaction, error)
	Summarize(ctx context.Context, userId int) (Summary, error)

	// SumExpensesByCategory returns the total absolute expense spend per
	// category within [from, to]. Categories with no expenses are absent.
	SumExpensesByCategory(ctx context.Context, userId int, from, to time.Time) (map[category.Category]float64, error)
	// SumExpensesForCategory is the single-category variant used by the alert
	// pipeline after each expense write.
	SumExpensesForCategory(ctx context.Context, userId int, cat category.Category, from, to time.Time) (float64, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const transactionColumns = "id, uid, title, amount, category, payment_method, note, tags, date, created_at"

func (r *RepositoryImpl) Store(ctx context.Context, userId int, t Transaction) (int, error) {
	query := `INSERT INTO transactions (
                    uid,
                    user_id,
                    title,
                    amount,
                    category,
                    payment_method,
                    note,
                    tags,
                    date
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		t.Uid,
		userId,
		t.Title,
		t.Amount,
		string(t.Category),
		string(t.PaymentMethod),
		t.Note,
		t.Tags,
		t.Date,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Find(ctx context.Context, userId int, filter Filter) ([]Transaction, int, error) {
	where := []string{"user_id = $1"}
	args := []any{userId}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where,
			"(title ILIKE $"+n+" OR note ILIKE $"+n+" OR array_to_string(tags, ' ') ILIKE $"+n+")")
	}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.PaymentMethod != "" {
		args = append(args, string(filter.PaymentMethod))
		where = append(where, "payment_method = $"+strconv.Itoa(len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions WHERE " + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		err := fmt.Errorf("could not count transactions: %w", err)
		log.Error(err)
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM transactions WHERE %s ORDER BY date DESC LIMIT $%d OFFSET $%d",
		transactionColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, 0, err
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, userId int, uid string) (Transaction, error) {
	query := fmt.Sprintf("SELECT %s FROM transactions WHERE user_id = $1 AND uid = $2", transactionColumns)
	t, err := scanTransaction(r.db.QueryRow(ctx, query, userId, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return t, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, t Transaction) (bool, error) {
	query := `UPDATE transactions SET
                  title = $1,
                  amount = $2,
                  category = $3,
                  payment_method = $4,
                  note = $5,
                  tags = $6,
                  date = $7
              WHERE uid = $8 AND user_id = $9`
	result, err := r.db.Exec(ctx, query,
		t.Title,
		t.Amount,
		string(t.Category),
		string(t.PaymentMethod),
		t.Note,
		t.Tags,
		t.Date,
		t.Uid,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE uid = $1 AND user_id = $2", uid, userId)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Recent(ctx context.Context, userId int, limit int) ([]Transaction, error) {
	query := fmt.Sprintf("SELECT %s FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		transactionColumns)
	rows, err := r.db.Query(ctx, query, userId, limit)
	if err != nil {
		err := fmt.Errorf("could not query recent transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *RepositoryImpl) Summarize(ctx context.Context, userId int) (Summary, error) {
	query := `SELECT
                  COUNT(*),
                  COALESCE(SUM(CASE WHEN amount >= 0 THEN amount ELSE 0 END), 0),
                  COALESCE(SUM(CASE WHEN amount < 0 THEN ABS(amount) ELSE 0 END), 0)
              FROM transactions WHERE user_id = $1`
	var s Summary
	if err := r.db.QueryRow(ctx, query, userId).Scan(&s.TotalTransactions, &s.Income, &s.Expense); err != nil {
		err := fmt.Errorf("could not summarize transactions: %w", err)
		log.Error(err)
		return Summary{}, err
	}
	s.Net = s.Income - s.Expense
	return s, nil
}

func (r *RepositoryImpl) SumExpensesByCategory(ctx context.Context, userId int, from, to time.Time) (map[category.Category]float64, error) {
	query := `SELECT category, SUM(ABS(amount))
              FROM transactions
              WHERE user_id = $1 AND date >= $2 AND date <= $3 AND amount < 0
              GROUP BY category`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not aggregate expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	spend := map[category.Category]float64{}
	for rows.Next() {
		var cat string
		var total float64
		if err := rows.Scan(&cat, &total); err != nil {
			err := fmt.Errorf("could not scan expense aggregate: %w", err)
			log.Error(err)
			return nil, err
		}
		spend[category.Category(cat)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return spend, nil
}

func (r *RepositoryImpl) SumExpensesForCategory(ctx context.Context, userId int, cat category.Category, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(ABS(amount)), 0)
              FROM transactions
              WHERE user_id = $1 AND category = $2 AND date >= $3 AND date <= $4 AND amount < 0`
	var total float64
	if err := r.db.QueryRow(ctx, query, userId, string(cat), from, to).Scan(&total); err != nil {
		err := fmt.Errorf("could not aggregate category expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var t Transaction
	var cat, method string
	if err := row.Scan(
		&t.Id,
		&t.Uid,
		&t.Title,
		&t.Amount,
		&cat,
		&method,
		&t.Note,
		&t.Tags,
		&t.Date,
		&t.CreatedAt,
	); err != nil {
		return Transaction{}, err
	}
	t.Category = category.Category(cat)
	t.PaymentMethod = PaymentMethod(method)
	return t, nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var transactions []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return transactions, nil
}
