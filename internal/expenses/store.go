// Package expenses persists the expense list as one JSON blob in local storage.
//
// The list is read and rewritten in full on every append. That is only safe
// with a single writer; two processes appending at once will lose one of the
// writes.
package expenses

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"masroufi/internal/dates"
	applog "masroufi/internal/log"
	"masroufi/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorageKey is the local storage key holding the expense list.
const StorageKey = "masroufi_web_v1"

var (
	ErrInvalidAmount = errors.New("please enter a valid amount")
	ErrEmptyCategory = errors.New("please choose a category")
)

// IsValidation reports whether err is a rejected form input rather than a
// storage failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrEmptyCategory)
}

// LocalStorage is the key/value contract the store needs.
type LocalStorage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
}

// Store reads and appends expense records.
type Store struct {
	storage LocalStorage
	logger  *applog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used to report recovered read failures.
func WithLogger(logger *applog.Logger) Option {
	return func(s *Store) { s.logger = logger.WithComponent(applog.ComponentExpense) }
}

// NewStore creates a Store backed by storage.
func NewStore(storage LocalStorage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  applog.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// LoadAll returns every stored expense, newest first.
// Missing, unreadable or corrupt data yields an empty list.
func (s *Store) LoadAll() []models.Expense {
	list, err := s.read()
	if err != nil {
		s.logger.Warn("discarding unreadable expense data", applog.FieldKey, StorageKey, applog.FieldError, err)
		return []models.Expense{}
	}
	return list
}

func (s *Store) read() ([]models.Expense, error) {
	blob, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", StorageKey, err)
	}
	if !ok || blob == "" {
		return []models.Expense{}, nil
	}
	return decode(blob)
}

func decode(blob string) ([]models.Expense, error) {
	var list []models.Expense
	if err := json.Unmarshal([]byte(blob), &list); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	if list == nil {
		list = []models.Expense{}
	}
	return list, nil
}

// Append validates the form input, stores a new record at the head of the
// list and returns it. Storage write failures are returned as is.
func (s *Store) Append(amount, category, note string) (models.Expense, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return models.Expense{}, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return models.Expense{}, ErrEmptyCategory
	}

	now := s.now()
	item := models.Expense{
		ID:        newID(now),
		Amount:    value,
		Category:  category,
		Note:      note,
		Date:      dates.FormatDate(now),
		CreatedAt: now,
	}

	list := append([]models.Expense{item}, s.LoadAll()...)
	blob, err := json.Marshal(list)
	if err != nil {
		return models.Expense{}, fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.storage.SetItem(StorageKey, string(blob)); err != nil {
		return models.Expense{}, fmt.Errorf("write %s: %w", StorageKey, err)
	}

	s.logger.Debug("expense stored", applog.FieldCategory, item.Category, applog.FieldCount, len(list))
	return item, nil
}

// ParseAmount converts form input to a positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// newID combines the creation time with a random suffix.
func newID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suffix[:12])
}
