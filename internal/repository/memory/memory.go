// Package memory holds in-memory implementations of the repository store
// interfaces. They back service and router tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
)

var (
	_ repository.UserStore                  = (*UserStore)(nil)
	_ repository.RefreshTokenStore          = (*TokenStore)(nil)
	_ repository.AuditStore                 = (*AuditStore)(nil)
	_ repository.DocumentStore[models.Blog] = (*Collection[models.Blog])(nil)
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]models.User{}}
}

func (s *UserStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return apperror.Conflict("username already exists")
	}
	if user.ID == "" {
		user.ID = models.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	s.users[user.Username] = *user
	return nil
}

func (s *UserStore) DeleteUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return apperror.NotFound("user not found")
	}
	delete(s.users, username)
	return nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: map[string]*models.RefreshToken{}}
}

func (s *TokenStore) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.ID == "" {
		token.ID = models.NewObjectID()
	}
	token.Revoked = false
	stored := *token
	s.tokens[token.TokenHash] = &stored
	return nil
}

func (s *TokenStore) FindRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[hash]
	if !ok {
		return nil, apperror.NotFound("token not found")
	}
	found := *token
	return &found, nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, hash string) (bool, error) {
	token, err := s.FindRefreshTokenByHash(ctx, hash)
	if err != nil {
		return false, err
	}
	return token.Revoked, nil
}

func (s *TokenStore) Revoke(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[hash]
	if !ok {
		return apperror.NotFound("token not found")
	}
	token.Revoked = true
	return nil
}

func (s *TokenStore) RevokeAllForUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, token := range s.tokens {
		if token.Username == username {
			token.Revoked = true
		}
	}
	return nil
}

func (s *TokenStore) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, token := range s.tokens {
		if !token.Revoked && token.ExpiresAt.Before(now) {
			token.Revoked = true
			n++
		}
	}
	return n, nil
}

// AuditStore records audit entries in order.
type AuditStore struct {
	mu      sync.Mutex
	Entries []models.AuditLog
}

func (s *AuditStore) CreateAuditLog(ctx context.Context, actor, action, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, models.AuditLog{
		ID:      uint(len(s.Entries) + 1),
		Actor:   actor,
		Action:  action,
		Details: details,
	})
	return nil
}

func (s *AuditStore) ListAuditLogs(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]models.AuditLog, 0)
	for i := len(s.Entries) - 1; i >= 0; i-- {
		entry := s.Entries[i]
		if filter.Actor != "" && entry.Actor != filter.Actor {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		entries = append(entries, entry)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}
	return entries, nil
}

// Actions returns the recorded actions.
func (s *AuditStore) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, len(s.Entries))
	for i, entry := range s.Entries {
		actions[i] = entry.Action
	}
	return actions
}

// Collection is a document collection addressed by column names. Documents
// are matched on their JSON representation, so column names must equal the
// json tags ("id" maps to "_id").
type Collection[T any] struct {
	mu     sync.Mutex
	name   string
	unique []string
	docs   []T

	// InsertErr, when set, is returned by the next Insert.
	InsertErr error
}

func NewCollection[T any](name string, unique ...string) *Collection[T] {
	return &Collection[T]{name: name, unique: unique}
}

func (c *Collection[T]) FindAll(ctx context.Context, order string) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	docs := make([]T, len(c.docs))
	copy(docs, c.docs)
	return docs, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, id string) (*T, error) {
	return c.FindBy(ctx, "id", id)
}

func (c *Collection[T]) FindBy(ctx context.Context, field string, value any) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, doc := range c.docs {
		if matches(doc, field, value) {
			found := doc
			return &found, nil
		}
	}
	return nil, apperror.NotFound(c.name + " not found")
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.InsertErr != nil {
		err := c.InsertErr
		c.InsertErr = nil
		return err
	}
	fields := toMap(*doc)
	for _, existing := range c.docs {
		for _, field := range c.unique {
			if matches(existing, field, fields[column(field)]) {
				return apperror.Conflict(c.name + " already exists")
			}
		}
	}
	c.docs = append(c.docs, *doc)
	return nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return c.UpdateBy(ctx, "id", id, fields)
}

// UpdateBy counts only documents whose stored values actually changed.
func (c *Collection[T]) UpdateBy(ctx context.Context, field string, value any, fields map[string]any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var modified int64
	for i, doc := range c.docs {
		if !matches(doc, field, value) {
			continue
		}
		current := toMap(doc)
		changed := false
		for k, v := range fields {
			if fmt.Sprint(current[column(k)]) != fmt.Sprint(v) {
				changed = true
			}
			current[column(k)] = v
		}
		if !changed {
			continue
		}
		var updated T
		if err := fromMap(current, &updated); err != nil {
			return modified, err
		}
		c.docs[i] = updated
		modified++
	}
	return modified, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, doc := range c.docs {
		if matches(doc, "id", id) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Len returns the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func column(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}

func matches(doc any, field string, value any) bool {
	v, ok := toMap(doc)[column(field)]
	return ok && fmt.Sprint(v) == fmt.Sprint(value)
}

func toMap(doc any) map[string]any {
	raw, _ := json.Marshal(doc)
	m := map[string]any{}
	_ = json.Unmarshal(raw, &m)
	return m
}

func fromMap(m map[string]any, out any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
