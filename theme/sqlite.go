package theme

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS theme_preferences (
    visitor_id TEXT PRIMARY KEY,
    mode TEXT NOT NULL CHECK(mode IN ('dark','light')),
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// SQLiteStore 基于 SQLite 的主题存储
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite 创建或打开 path 处的数据库
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败：%w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败：%w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("连接数据库失败：%w", err)
	}

	return newSQLiteStore(db, path)
}

// OpenSQLiteMemory 创建内存数据库（主要用于测试）
func OpenSQLiteMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("打开内存数据库失败：%w", err)
	}
	// 每个连接都有独立的内存数据库
	db.SetMaxOpenConns(1)

	return newSQLiteStore(db, ":memory:")
}

func newSQLiteStore(db *sql.DB, path string) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化数据表失败：%w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, visitorID string) (Mode, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT mode FROM theme_preferences WHERE visitor_id = ?`, visitorID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Default, nil
	}
	if err != nil {
		return "", fmt.Errorf("读取主题偏好失败：%w", err)
	}

	mode, ok := ParseMode(raw)
	if !ok {
		return Default, nil
	}
	return mode, nil
}

func (s *SQLiteStore) Set(ctx context.Context, visitorID string, mode Mode) error {
	if _, ok := ParseMode(string(mode)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO theme_preferences (visitor_id, mode) VALUES (?, ?)
ON CONFLICT(visitor_id) DO UPDATE SET mode = excluded.mode, updated_at = datetime('now')`,
		visitorID, string(mode))
	if err != nil {
		return fmt.Errorf("保存主题偏好失败：%w", err)
	}
	return nil
}

// Path 返回数据库路径
func (s *SQLiteStore) Path() string { return s.path }

// Close 关闭数据库
func (s *SQLiteStore) Close() error { return s.db.Close() }
