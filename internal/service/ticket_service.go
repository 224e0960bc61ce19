package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/psds-microservice/support-portal/internal/errs"
	"github.com/psds-microservice/support-portal/internal/model"
	"gorm.io/gorm"
)

// Filter — необязательные условия выборки тикетов. Непустые поля
// объединяются через AND.
type Filter struct {
	// Точное совпадение.
	Priority string
	Status   string
	// Подстрока в reason.
	Reason string
	// Подстрока в любом из name/email/reason/note.
	Search string
}

// Stats — счётчики для дашборда. Четыре независимых COUNT, без общего
// снапшота: тикет, созданный между запросами, может попасть не во все.
type Stats struct {
	Total  int64 `json:"total"`
	Urgent int64 `json:"urgent"`
	New    int64 `json:"new"`
	Today  int64 `json:"today"`
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// newTicketID генерирует внешний идентификатор тикета: метка времени плюс
// случайный суффикс. Коллизия практически невозможна; UNIQUE по ticket_id —
// последняя линия защиты.
func newTicketID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("TKT-%d-%s", time.Now().UnixMilli(), suffix)
}

// mapStorageError переводит ошибки БД в доменные. Нарушения ограничений
// (NOT NULL, UNIQUE) — ошибка клиента, остальное — ошибка хранилища.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", errs.ErrConstraint, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", errs.ErrConstraint, err)
	}
	return err
}

// Create присваивает ticket_id и статус "new", сохраняет тикет и заполняет
// суррогатный id и таймстемпы. Никакой валидации полей сверх ограничений
// схемы.
func (s *TicketService) Create(ctx context.Context, t *model.Ticket) error {
	t.TicketID = newTicketID()
	t.Status = model.DefaultStatus
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return mapStorageError(err)
	}
	return nil
}

// List возвращает тикеты под фильтр, новые первыми. Без пагинации: выборка
// целиком, пустой список — не ошибка.
func (s *TicketService) List(ctx context.Context, f Filter) ([]model.Ticket, error) {
	tx := s.db.WithContext(ctx).Model(&model.Ticket{})
	if f.Priority != "" {
		tx = tx.Where("priority = ?", f.Priority)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Reason != "" {
		tx = tx.Where("reason LIKE ?", "%"+f.Reason+"%")
	}
	if f.Search != "" {
		term := "%" + f.Search + "%"
		tx = tx.Where("(name LIKE ? OR email LIKE ? OR reason LIKE ? OR note LIKE ?)",
			term, term, term, term)
	}
	items := make([]model.Ticket, 0)
	if err := tx.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus ставит тикету новый статус и обновляет updated_at. Значение
// статуса не проверяется по справочнику — любое непустое принимается.
func (s *TicketService) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res := s.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return mapStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrTicketNotFound
	}
	return nil
}

// Stats считает четыре счётчика дашборда. "today" сравнивает дату created_at
// с текущей датой средствами SQLite (обе в UTC).
func (s *TicketService) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	tx := func() *gorm.DB { return s.db.WithContext(ctx).Model(&model.Ticket{}) }
	if err := tx().Count(&out.Total).Error; err != nil {
		return nil, err
	}
	if err := tx().Where("priority = ?", model.PriorityUrgent).Count(&out.Urgent).Error; err != nil {
		return nil, err
	}
	if err := tx().Where("status = ?", model.DefaultStatus).Count(&out.New).Error; err != nil {
		return nil, err
	}
	if err := tx().Where("DATE(created_at) = DATE('now')").Count(&out.Today).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
