package devbackend

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store wraps the fixture's sqlite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the fixture database and migrates it.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("running fixture migrations", "database", dbPath)
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// NewTestStore opens an in-memory fixture database for tests.
func NewTestStore() (*Store, func(), error) {
	store, err := NewStore(":memory:")
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type userRow struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type postRow struct {
	ID        int64
	Title     string
	Content   sql.NullString
	Image     sql.NullString
	Category  sql.NullString
	UserID    int64
	CreatedAt time.Time
	Likes     int
	Visits    int
	IsLiked   bool
}

func (s *Store) createUser(ctx context.Context, username, email, passwordHash string, isAdmin bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, is_admin) VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, isAdmin)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) userByUsername(ctx context.Context, username string) (*userRow, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE username = ?`, username))
}

func (s *Store) userByID(ctx context.Context, id int64) (*userRow, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE id = ?`, id))
}

func (s *Store) userByToken(ctx context.Context, token string) (*userRow, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.is_admin, u.created_at
		 FROM users u JOIN tokens t ON t.user_id = u.id WHERE t.token = ?`, token))
}

func (s *Store) scanUser(row *sql.Row) (*userRow, error) {
	var u userRow
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) users(ctx context.Context) ([]userRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, is_admin, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []userRow
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) saveToken(ctx context.Context, token string, userID int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO tokens (token, user_id) VALUES (?, ?)`, token, userID)
	return err
}

const postColumns = `
	p.id, p.title, p.content, p.image, p.categorie, p.user_id, p.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes,
	(SELECT COUNT(*) FROM visits v WHERE v.post_id = p.id) AS visits,
	EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = ?) AS isliked`

func (s *Store) posts(ctx context.Context, viewerID int64) ([]postRow, error) {
	return s.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY p.created_at DESC`, viewerID)
}

func (s *Store) postsByAuthor(ctx context.Context, viewerID, authorID int64) ([]postRow, error) {
	return s.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.user_id = ? ORDER BY p.created_at DESC`, viewerID, authorID)
}

func (s *Store) postByID(ctx context.Context, viewerID, id int64) (*postRow, error) {
	posts, err := s.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.id = ?`, viewerID, id)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, sql.ErrNoRows
	}
	return &posts[0], nil
}

func (s *Store) similarPosts(ctx context.Context, postID int64, limit int) ([]postRow, error) {
	return s.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p
		 WHERE p.id != ? AND p.categorie IS NOT NULL
		   AND p.categorie = (SELECT categorie FROM posts WHERE id = ?)
		 ORDER BY p.created_at DESC LIMIT ?`, 0, postID, postID, limit)
}

func (s *Store) recommendedPosts(ctx context.Context, userID int64, limit int) ([]postRow, error) {
	// Category overlap with what the user liked or visited; recency as
	// the fallback when there is no history.
	posts, err := s.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p
		 WHERE p.categorie IN (
		     SELECT DISTINCT p2.categorie FROM posts p2
		     JOIN likes l ON l.post_id = p2.id AND l.user_id = ?
		 ) AND p.id NOT IN (SELECT post_id FROM likes WHERE user_id = ?)
		 ORDER BY p.created_at DESC LIMIT ?`, userID, userID, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(posts) > 0 {
		return posts, nil
	}
	return s.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY p.created_at DESC LIMIT ?`, userID, limit)
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]postRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []postRow
	for rows.Next() {
		var p postRow
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Image, &p.Category, &p.UserID,
			&p.CreatedAt, &p.Likes, &p.Visits, &p.IsLiked); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// InsertPost publishes a post directly, bypassing the HTTP surface.
// Integration tests use it to arrange fixture content.
func (s *Store) InsertPost(ctx context.Context, title, content, category string, userID int64) (int64, error) {
	return s.createPost(ctx, title, content, "", category, userID)
}

func (s *Store) createPost(ctx context.Context, title, content, image, category string, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, content, image, categorie, user_id) VALUES (?, ?, nullif(?, ''), nullif(?, ''), ?)`,
		title, content, image, category, userID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) updatePost(ctx context.Context, id int64, title, content, image, category string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, image = nullif(?, ''), categorie = nullif(?, '') WHERE id = ?`,
		title, content, image, category, id)
	return err
}

func (s *Store) deletePost(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM likes WHERE post_id = ?`, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE post_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}

// toggleLike flips a like and reports whether it now exists.
func (s *Store) toggleLike(ctx context.Context, userID, postID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return false, err
	}
	if deleted, _ := res.RowsAffected(); deleted > 0 {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO likes (user_id, post_id) VALUES (?, ?)`, userID, postID)
	return true, err
}

func (s *Store) recordVisit(ctx context.Context, postID int64, userID int64, ip string) error {
	var user any
	if userID > 0 {
		user = userID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (post_id, user_id, ip_address) VALUES (?, ?, ?)`, postID, user, ip)
	return err
}

func (s *Store) postVisits(ctx context.Context, postID int64) (int, error) {
	var visits int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits WHERE post_id = ?`, postID).Scan(&visits)
	return visits, err
}

type categoryCount struct {
	Category string
	Count    int
}

func (s *Store) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (s *Store) categoryCounts(ctx context.Context, query string, args ...any) ([]categoryCount, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []categoryCount
	for rows.Next() {
		var c categoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
