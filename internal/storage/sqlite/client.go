package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/storage/models"
	"github.com/learnify/backend/pkg/logger"
)

// timeLayout keeps created_at sortable as plain text.
const timeLayout = "2006-01-02 15:04:05"

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err = db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query_text TEXT NOT NULL,
		topic TEXT NOT NULL,
		mood TEXT NOT NULL,
		polarity REAL NOT NULL,
		feedback TEXT DEFAULT '',
		username TEXT DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_username ON interactions(username);
	CREATE INDEX IF NOT EXISTS idx_interactions_created ON interactions(created_at);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

// InsertInteraction appends one record to the interaction log.
func (c *Client) InsertInteraction(record *models.InteractionRecord) error {
	query := `
		INSERT INTO interactions (query_text, topic, mood, polarity, feedback, username, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := c.db.Exec(
		query,
		record.QueryText,
		record.Topic,
		record.Mood,
		record.Polarity,
		record.Feedback,
		record.Username,
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = int(id)
	}

	logger.Debug("Interaction recorded",
		zap.String("username", record.Username),
		zap.String("topic", record.Topic),
		zap.String("mood", record.Mood),
	)

	return nil
}

// GetInteractions returns a user's records newest first. A limit <= 0 means
// no limit.
func (c *Client) GetInteractions(username string, limit int) ([]models.InteractionRecord, error) {
	query := `
		SELECT id, query_text, topic, mood, polarity, feedback, username, created_at
		FROM interactions
		WHERE username = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{username}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractions(rows)
}

// GetAllInteractions returns every record newest first, for global analytics.
func (c *Client) GetAllInteractions() ([]models.InteractionRecord, error) {
	rows, err := c.db.Query(`
		SELECT id, query_text, topic, mood, polarity, feedback, username, created_at
		FROM interactions
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractions(rows)
}

func scanInteractions(rows *sql.Rows) ([]models.InteractionRecord, error) {
	var records []models.InteractionRecord
	for rows.Next() {
		var r models.InteractionRecord
		var createdAt string

		err := rows.Scan(&r.ID, &r.QueryText, &r.Topic, &r.Mood, &r.Polarity, &r.Feedback, &r.Username, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			r.CreatedAt = t.UTC()
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

// UpdateFeedback attaches feedback to the most recent record matching
// (username, queryText). Last write wins on repeat calls. Returns false when
// no record matched.
func (c *Client) UpdateFeedback(username, queryText, feedback string) (bool, error) {
	result, err := c.db.Exec(`
		UPDATE interactions SET feedback = ?
		WHERE id = (
			SELECT id FROM interactions
			WHERE username = ? AND query_text = ?
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)
	`, feedback, username, queryText)
	if err != nil {
		return false, fmt.Errorf("failed to update feedback: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (c *Client) CountInteractions(username string) (int, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM interactions WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return count, nil
}

func (c *Client) CountAllInteractions() (int, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM interactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return count, nil
}

func (c *Client) CreateUser(user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := c.db.Exec(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, user.Username, user.Email, user.PasswordHash, user.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		user.ID = int(id)
	}

	logger.Info("User created", zap.String("username", user.Username))
	return nil
}

func (c *Client) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	var createdAt string

	err := c.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		user.CreatedAt = t.UTC()
	}

	return &user, nil
}

func (c *Client) ListUsers() ([]models.User, error) {
	rows, err := c.db.Query(`
		SELECT id, username, email, password_hash, created_at
		FROM users ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var createdAt string

		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			user.CreatedAt = t.UTC()
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return users, nil
}

// DeleteUser removes the user and their interaction history. Returns false
// when no user had the given id.
func (c *Client) DeleteUser(id int) (bool, error) {
	var username string
	err := c.db.QueryRow(`SELECT username FROM users WHERE id = ?`, id).Scan(&username)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	if _, err := c.db.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM interactions WHERE username = ?`, username); err != nil {
		return false, fmt.Errorf("failed to delete user interactions: %w", err)
	}

	logger.Info("User deleted", zap.Int("id", id), zap.String("username", username))
	return true, nil
}
