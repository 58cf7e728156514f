package config_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DurjoyKumar177/CrisisAid-Backend/cmd/config"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/testutil"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type client struct {
	t    *testing.T
	app  *fiber.App
	db   *gorm.DB
	mail *testutil.Mailer
}

func newClient(t *testing.T) *client {
	db := testutil.NewDB(t)
	mailer := &testutil.Mailer{}
	cfg := &utils.Config{
		AppURL:           "http://localhost:8080",
		JWTSecret:        "e2e-secret",
		JWTTTLMinutes:    10,
		LogDir:           t.TempDir(),
		RateLimitMax:     1000,
		CORSAllowOrigins: "*",
	}

	app, err := config.NewApp(db, cfg, testutil.NewLogger(), testutil.NewObjectStore(), mailer)
	require.NoError(t, err)
	return &client{t: t, app: app, db: db, mail: mailer}
}

type result struct {
	Status int
	Body   map[string]any
}

func (r result) data() map[string]any {
	d, _ := r.Body["data"].(map[string]any)
	return d
}

func (c *client) do(method, path, token string, body any) result {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	res := result{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &res.Body), string(raw))
	}
	return res
}

func (c *client) login(u *entities.User) string {
	c.t.Helper()
	res := c.do("POST", "/api/accounts/login", "", map[string]any{
		"email":    u.Email,
		"password": testutil.Password,
	})
	require.Equal(c.t, fiber.StatusOK, res.Status, res.Body)
	return res.data()["token"].(string)
}

func TestPing(t *testing.T) {
	c := newClient(t)

	res := c.do("GET", "/api/ping", "", nil)
	assert.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "pong", res.Body["message"])

	res = c.do("GET", "/api/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestApprovalWorkflowEndToEnd(t *testing.T) {
	c := newClient(t)
	owner := c.login(testutil.CreateUser(t, c.db, "u1", false))
	volunteer := c.login(testutil.CreateUser(t, c.db, "u2", false))
	admin := c.login(testutil.CreateUser(t, c.db, "admin", true))

	res := c.do("POST", "/api/crisis/posts", owner, map[string]any{
		"title":       "Flash flood in Sylhet",
		"description": "Thousands stranded",
		"post_type":   "district",
		"location":    "Sylhet",
	})
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)
	post := res.data()
	postID := post["id"].(string)
	assert.Equal(t, "pending", post["status"])

	donation := map[string]any{"crisis_post": postID, "amount": 100, "donor_name": "Guest"}
	res = c.do("POST", "/api/donations/money/create", "", donation)
	assert.Equal(t, fiber.StatusBadRequest, res.Status, "pending posts take no donations")

	res = c.do("POST", "/api/crisis/posts/"+postID+"/approve", owner, nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)
	assert.Equal(t, "not permitted", res.Body["message"])

	res = c.do("POST", "/api/crisis/posts/"+postID+"/approve", admin, nil)
	require.Equal(t, fiber.StatusOK, res.Status, res.Body)
	assert.Equal(t, "approved", res.data()["status"])

	res = c.do("POST", "/api/donations/money/create", "", donation)
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)
	assert.Equal(t, "Thank you for your donation!", res.Body["message"])

	res = c.do("GET", "/api/donations/crisis/"+postID+"/summary", "", nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	total, err := decimal.NewFromString(res.data()["total_money"].(string))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)), total.String())
	assert.EqualValues(t, 1, res.data()["total_donors_money"])

	res = c.do("POST", "/api/volunteers/apply", volunteer, map[string]any{"crisis_post": postID, "message": "I have a boat"})
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)
	applicationID := res.data()["id"].(string)

	res = c.do("POST", "/api/updates/create", volunteer, map[string]any{
		"crisis_post": postID, "title": "On my way", "content": "Leaving now",
	})
	assert.Equal(t, fiber.StatusForbidden, res.Status, "pending volunteers cannot post updates")

	res = c.do("POST", "/api/volunteers/"+applicationID+"/approve", owner, nil)
	require.Equal(t, fiber.StatusOK, res.Status, res.Body)
	assert.Equal(t, 1, c.mail.Count())

	res = c.do("POST", "/api/updates/create", volunteer, map[string]any{
		"crisis_post": postID, "title": "Day 1", "content": "Rescued 12 people",
	})
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)
	updateID := res.data()["id"].(string)
	assert.Equal(t, "u2", res.data()["creator_name"])

	res = c.do("POST", "/api/updates/comment/create", owner, map[string]any{"update": updateID, "content": "Thank you"})
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)

	res = c.do("GET", "/api/updates/"+updateID, "", nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.EqualValues(t, 1, res.data()["total_comments"])
}

func TestDuplicateApplicationOverHTTP(t *testing.T) {
	c := newClient(t)
	owner := testutil.CreateUser(t, c.db, "u1", false)
	volunteer := c.login(testutil.CreateUser(t, c.db, "u2", false))
	post := testutil.CreatePost(t, c.db, owner, "approved")

	body := map[string]any{"crisis_post": post.ID.String()}
	res := c.do("POST", "/api/volunteers/apply", volunteer, body)
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)

	res = c.do("POST", "/api/volunteers/apply", volunteer, body)
	assert.Equal(t, fiber.StatusConflict, res.Status)

	var count int64
	require.NoError(t, c.db.Model(&entities.VolunteerApplication{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRequestValidation(t *testing.T) {
	c := newClient(t)
	token := c.login(testutil.CreateUser(t, c.db, "u1", false))

	res := c.do("POST", "/api/crisis/posts", token, map[string]any{"title": "No type"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	fields, _ := res.Body["fields"].(map[string]any)
	assert.Contains(t, fields, "post_type")
	assert.Contains(t, fields, "description")

	res = c.do("POST", "/api/crisis/posts", "", map[string]any{"title": "x"})
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = c.do("GET", "/api/crisis/posts?status=bogus", "", nil)
	assert.Equal(t, fiber.StatusOK, res.Status, "status filter is ignored for non-admins")

	res = c.do("GET", "/api/crisis/posts/not-a-uuid", "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestRegisterVerifyLogin(t *testing.T) {
	c := newClient(t)

	res := c.do("POST", "/api/accounts/register", "", map[string]any{
		"username":  "rahim",
		"email":     "rahim@example.com",
		"password":  testutil.Password,
		"password2": "mismatch",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = c.do("POST", "/api/accounts/register", "", map[string]any{
		"username":  "rahim",
		"email":     "rahim@example.com",
		"password":  testutil.Password,
		"password2": testutil.Password,
	})
	require.Equal(t, fiber.StatusCreated, res.Status, res.Body)

	login := map[string]any{"email": "rahim@example.com", "password": testutil.Password}
	res = c.do("POST", "/api/accounts/login", "", login)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	var u entities.User
	require.NoError(t, c.db.Where("username = ?", "rahim").First(&u).Error)
	res = c.do("GET", "/api/accounts/verify?token="+*u.VerificationToken, "", nil)
	require.Equal(t, fiber.StatusOK, res.Status, res.Body)

	res = c.do("POST", "/api/accounts/login", "", login)
	require.Equal(t, fiber.StatusOK, res.Status, res.Body)
	token := res.data()["token"].(string)

	res = c.do("GET", "/api/accounts/profile", token, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "rahim", res.data()["username"])
}
