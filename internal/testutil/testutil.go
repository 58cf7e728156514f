// Package testutil wires in-memory collaborators for package tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	migration "github.com/DurjoyKumar177/CrisisAid-Backend/cmd/database/migrate"
	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const Password = "s3cret-pass"

// CreateUser inserts a verified user whose password is Password.
func CreateUser(t testing.TB, db *gorm.DB, username string, isAdmin bool) *entities.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	role := domain.RoleUser
	if isAdmin {
		role = domain.RoleAdmin
	}
	u := &entities.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   string(hash),
		Role:       role,
		IsAdmin:    isAdmin,
		IsVerified: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func ActorOf(u *entities.User) domain.Actor {
	return domain.Actor{ID: u.ID, Username: u.Username, Role: u.Role, IsAdmin: u.IsAdmin}
}

func CreatePost(t testing.TB, db *gorm.DB, owner *entities.User, status domain.Status) *entities.CrisisPost {
	t.Helper()

	p := &entities.CrisisPost{
		Title:       "Flood in " + owner.Username + "'s district",
		Description: "Rising water, families displaced",
		PostType:    domain.PostTypeDistrict,
		Location:    "Sylhet",
		Status:      status.String(),
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateApplication(t testing.TB, db *gorm.DB, user *entities.User, post *entities.CrisisPost, status domain.Status) *entities.VolunteerApplication {
	t.Helper()

	a := &entities.VolunteerApplication{
		UserID:       user.ID,
		CrisisPostID: post.ID,
		Message:      "I can help",
		Status:       status.String(),
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

// FileHeader builds an uploaded file as fiber would hand it to a handler.
func FileHeader(t testing.TB, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File[field][0]
}

// PNG is the smallest valid PNG image.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// ObjectStore keeps uploads in memory.
type ObjectStore struct {
	mu        sync.Mutex
	Objects   map[string]string
	Deleted   []string
	DeleteErr error
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{Objects: map[string]string{}}
}

func (s *ObjectStore) UploadFile(_ context.Context, name string, file *multipart.FileHeader, folder string, _ ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := folder + "/" + name + "-" + file.Filename
	s.Objects[key] = file.Filename
	return key, nil
}

func (s *ObjectStore) DeleteFile(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Objects, key)
	s.Deleted = append(s.Deleted, key)
	return nil
}

func (s *ObjectStore) GetPublicLinkKey(key string) string {
	return "https://cdn.test/" + key
}

func (s *ObjectStore) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://cdn.test/")
}

type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records outgoing mail instead of sending it.
type Mailer struct {
	mu   sync.Mutex
	Sent []Mail
	Err  error
}

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, Mail{To: toEmail, Subject: subject, Body: body})
	return nil
}

func (m *Mailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
