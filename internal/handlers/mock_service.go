package handlers

import (
	"context"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	loginUser   *models.User
	loginErr    error
	lookupUser  *models.User
	lookupErr   error
	ensureErr   error

	lastLoginUsername  string
	lastLoginPassword  string
	lastLookupUsername string
}

func (m *mockAuth) Register(ctx context.Context, username, password string) (int, error) {
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*models.User, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginUser, m.loginErr
}

func (m *mockAuth) LookupPrincipal(ctx context.Context, username string) (*models.User, error) {
	m.lastLookupUsername = username
	return m.lookupUser, m.lookupErr
}

func (m *mockAuth) EnsureUser(ctx context.Context, username, password string, role models.Role) error {
	return m.ensureErr
}

type mockCatalog struct {
	listResp  []models.Book
	listErr   error
	getResp   *models.Book
	getErr    error
	createFn  func(b models.Book) (models.Book, error)
	updateFn  func(id int, b models.Book) (*models.Book, error)
	deleteOK  bool
	deleteErr error

	lastQuery    service.BookQuery
	lastDeleteID int
}

func (m *mockCatalog) List(ctx context.Context, q service.BookQuery) ([]models.Book, error) {
	m.lastQuery = q
	return m.listResp, m.listErr
}
func (m *mockCatalog) Get(ctx context.Context, id int) (*models.Book, error) {
	return m.getResp, m.getErr
}
func (m *mockCatalog) Create(ctx context.Context, b models.Book) (models.Book, error) {
	if m.createFn != nil {
		return m.createFn(b)
	}
	return b, nil
}
func (m *mockCatalog) Update(ctx context.Context, id int, b models.Book) (*models.Book, error) {
	if m.updateFn != nil {
		return m.updateFn(id, b)
	}
	return &b, nil
}
func (m *mockCatalog) Delete(ctx context.Context, id int) (bool, error) {
	m.lastDeleteID = id
	return m.deleteOK, m.deleteErr
}

type mockReviews struct {
	listResp  []models.CvReview
	listErr   error
	getResp   *models.CvReview
	getErr    error
	createFn  func(r models.CvReview) (models.CvReview, error)
	deleteOK  bool
	deleteErr error
	stats     service.ReviewStats
	statsErr  error
}

func (m *mockReviews) List(ctx context.Context) ([]models.CvReview, error) {
	return m.listResp, m.listErr
}
func (m *mockReviews) Get(ctx context.Context, id int) (*models.CvReview, error) {
	return m.getResp, m.getErr
}
func (m *mockReviews) Create(ctx context.Context, r models.CvReview) (models.CvReview, error) {
	if m.createFn != nil {
		return m.createFn(r)
	}
	r.ID = 1
	r.CreatedAt = time.Now().UTC()
	return r, nil
}
func (m *mockReviews) Delete(ctx context.Context, id int) (bool, error) {
	return m.deleteOK, m.deleteErr
}
func (m *mockReviews) Stats(ctx context.Context) (service.ReviewStats, error) {
	return m.stats, m.statsErr
}

// ---- Shared Test Helpers ----

const testSigningSecret = "handler-test-secret"

func newTestCodec() *service.TokenCodec {
	return service.NewTokenCodec(testSigningSecret, time.Hour)
}

func newTestRouter(s *service.Service, codec *service.TokenCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, codec, nil)
	return h.InitRoutes()
}
