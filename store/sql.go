package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// documentRow holds one JSON document per (collection, id).
type documentRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	ID         string         `gorm:"primaryKey;size:64"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"index"`
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

const (
	pgInsufficientPrivilege = "42501"
	mysqlTableAccessDenied  = 1142
)

// SQLStore keeps documents as JSON rows through GORM so the portal can run
// on Postgres, MySQL or SQLite instead of MongoDB.
type SQLStore struct {
	db           *gorm.DB
	log          *zap.Logger
	pollInterval time.Duration
}

// OpenSQL opens driver ("postgres", "mysql" or "sqlite") and migrates the
// documents table.
func OpenSQL(driver, dsn string, log *zap.Logger, pollInterval time.Duration) (*SQLStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	case "mysql":
		dialector = mysqldriver.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewSQLStore(db, log, pollInterval)
}

func NewSQLStore(db *gorm.DB, log *zap.Logger, pollInterval time.Duration) (*SQLStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &SQLStore{db: db, log: log, pollInterval: pollInterval}, nil
}

func (s *SQLStore) classify(err error, op, collection, id string, data interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege {
		return &PermissionError{Path: path(collection, id), Operation: op, Data: data, Err: err}
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlTableAccessDenied {
		return &PermissionError{Path: path(collection, id), Operation: op, Data: data, Err: err}
	}
	if strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%s %s: %w", op, path(collection, id), err)
}

func (s *SQLStore) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	d, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	d["id"] = id
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	row := documentRow{Collection: collection, ID: id, Data: datatypes.JSON(raw)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", s.classify(err, OpCreate, collection, "", doc)
	}
	return id, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		if err := tx.Where("collection = ? AND id = ?", collection, id).First(&row).Error; err != nil {
			return s.classify(err, OpUpdate, collection, id, fields)
		}
		var d document
		if err := json.Unmarshal(row.Data, &d); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		if err := d.merge(fields); err != nil {
			return err
		}
		raw, err := json.Marshal(d)
		if err != nil {
			return err
		}
		res := tx.Model(&documentRow{}).
			Where("collection = ? AND id = ?", collection, id).
			Update("data", datatypes.JSON(raw))
		return s.classify(res.Error, OpUpdate, collection, id, fields)
	})
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).Delete(&documentRow{})
	if res.Error != nil {
		return s.classify(res.Error, OpDelete, collection, id, nil)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	var row documentRow
	if err := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).First(&row).Error; err != nil {
		return s.classify(err, OpGet, collection, id, nil)
	}
	return decodeDocument(row.Data, out)
}

func (s *SQLStore) rows(ctx context.Context, collection string) ([]documentRow, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, s.classify(err, OpList, collection, "", nil)
	}
	return rows, nil
}

func rowDocuments(rows []documentRow) ([]document, error) {
	docs := make([]document, 0, len(rows))
	for _, row := range rows {
		var d document
		if err := json.Unmarshal(row.Data, &d); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", row.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (s *SQLStore) List(ctx context.Context, q Query, out interface{}) error {
	rows, err := s.rows(ctx, q.Collection)
	if err != nil {
		return err
	}
	docs, err := rowDocuments(rows)
	if err != nil {
		return err
	}
	return decodeList(docs, q, out)
}

// Subscribe polls the collection and emits whenever its content hash changes.
func (s *SQLStore) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	first, digest, err := s.snapshot(ctx, q)
	if err != nil {
		return nil, err
	}
	ch := make(chan Snapshot, 1)
	ch <- first

	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		last := digest
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap, digest, err := s.snapshot(ctx, q)
				if err != nil {
					s.log.Error("Failed to poll collection", zap.String("collection", q.Collection), zap.Error(err))
					continue
				}
				if digest == last {
					continue
				}
				last = digest
				publish(ch, snap)
			}
		}
	}()
	return ch, nil
}

func (s *SQLStore) snapshot(ctx context.Context, q Query) (Snapshot, string, error) {
	rows, err := s.rows(ctx, q.Collection)
	if err != nil {
		return Snapshot{}, "", err
	}
	h := sha256.New()
	for _, row := range rows {
		h.Write([]byte(row.ID))
		h.Write(row.Data)
	}
	docs, err := rowDocuments(rows)
	if err != nil {
		return Snapshot{}, "", err
	}
	ordered := orderDocuments(docs, q)
	snap := Snapshot{
		Collection: q.Collection,
		Size:       len(ordered),
		ReadAt:     time.Now(),
		decode: func(out interface{}) error {
			return decodeList(ordered, Query{}, out)
		},
	}
	return snap, hex.EncodeToString(h.Sum(nil)), nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
