package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medibook/internal/auth"
	"medibook/internal/config"
	apperrors "medibook/internal/errors"
	"medibook/internal/handler"
	"medibook/internal/model"
	"medibook/internal/router"
)

const testSecret = "test-secret"

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string, role model.Role, specialization string) (string, *model.User, error) {
	args := m.Called(ctx, name, email, password, role, specialization)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListDoctors(ctx context.Context) ([]model.DoctorView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DoctorView), args.Error(1)
}

func (m *MockUserService) ListDoctorsFull(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) CreateDoctor(ctx context.Context, name, email, password, specialization string) (*model.User, error) {
	args := m.Called(ctx, name, email, password, specialization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) SetApproval(ctx context.Context, id uint, approved bool) (*model.User, error) {
	args := m.Called(ctx, id, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteDoctor(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAppointmentService is a mock implementation of service.AppointmentService.
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Book(ctx context.Context, patientID, doctorID uint, date time.Time, timeOfDay, reason string) (*model.Appointment, error) {
	args := m.Called(ctx, patientID, doctorID, date, timeOfDay, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListForUser(ctx context.Context, userID uint, role model.Role) ([]model.Appointment, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) UpdateStatus(ctx context.Context, id, doctorID uint, newStatus model.AppointmentStatus) (*model.Appointment, error) {
	args := m.Called(ctx, id, doctorID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) SubmitReview(ctx context.Context, id, patientID uint, rating int, review string) (*model.Appointment, error) {
	args := m.Called(ctx, id, patientID, rating, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

// MockAnalyticsService is a mock implementation of service.AnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Report(ctx context.Context) (*model.AnalyticsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsReport), args.Error(1)
}

type testServer struct {
	e            *echo.Echo
	authSvc      *MockAuthService
	userSvc      *MockUserService
	apptSvc      *MockAppointmentService
	analyticsSvc *MockAnalyticsService
}

func setup(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		e:            echo.New(),
		authSvc:      new(MockAuthService),
		userSvc:      new(MockUserService),
		apptSvc:      new(MockAppointmentService),
		analyticsSvc: new(MockAnalyticsService),
	}

	cfg := &config.Config{JWTSecret: testSecret}
	router.Register(
		ts.e,
		cfg,
		handler.NewAuthHandler(ts.authSvc),
		handler.NewAppointmentHandler(ts.apptSvc, ts.userSvc),
		handler.NewAdminHandler(ts.userSvc, ts.analyticsSvc),
	)
	return ts
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func makeToken(t *testing.T, userID uint, role model.Role) string {
	t.Helper()
	token, err := auth.NewJWTService(testSecret).GenerateToken(userID, role)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	ts := setup(t)
	email := fmt.Sprintf("test-%s@example.com", uuid.New().String()[:8])

	ts.authSvc.On("Register", mock.Anything, "Alice", email, "password123", model.RolePatient, "").
		Return("issued-token", &model.User{ID: 1, Name: "Alice", Email: email, Role: model.RolePatient, IsApproved: true}, nil)

	rec := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Alice", "email": email, "password": "password123", "role": "patient",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "issued-token")
	ts.authSvc.AssertExpectations(t)
}

func TestRegisterEndpoint_RejectsBadPayload(t *testing.T) {
	ts := setup(t)

	rec := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Alice", "email": "not-an-email", "password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.authSvc.AssertNotCalled(t, "Register")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := setup(t)

	rec := ts.request(t, http.MethodGet, "/api/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/appointments", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ts.apptSvc.AssertNotCalled(t, "ListForUser")
}

func TestBookEndpoint_RoleGate(t *testing.T) {
	ts := setup(t)

	// A valid token with the wrong role must get 403, not 401.
	rec := ts.request(t, http.MethodPost, "/api/appointments/book", makeToken(t, 2, model.RoleDoctor), map[string]interface{}{
		"doctor_id": 2, "date": "2025-06-01", "time": "09:00",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	ts.apptSvc.AssertNotCalled(t, "Book")
}

func TestBookEndpoint_AsPatient(t *testing.T) {
	ts := setup(t)
	date, _ := time.Parse("2006-01-02", "2025-06-01")

	ts.apptSvc.On("Book", mock.Anything, uint(1), uint(2), date, "09:00", "checkup").
		Return(&model.Appointment{ID: 10, PatientID: 1, DoctorID: 2, Status: model.StatusPending}, nil)

	rec := ts.request(t, http.MethodPost, "/api/appointments/book", makeToken(t, 1, model.RolePatient), map[string]interface{}{
		"doctor_id": 2, "date": "2025-06-01", "time": "09:00", "reason": "checkup",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	ts.apptSvc.AssertExpectations(t)
}

func TestUpdateStatusEndpoint_MapsNotFound(t *testing.T) {
	ts := setup(t)

	ts.apptSvc.On("UpdateStatus", mock.Anything, uint(10), uint(3), model.StatusApproved).
		Return(nil, apperrors.ErrAppointmentNotFound)

	rec := ts.request(t, http.MethodPut, "/api/appointments/10/status", makeToken(t, 3, model.RoleDoctor), map[string]interface{}{
		"status": "approved",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "APPOINTMENT_NOT_FOUND")
	ts.apptSvc.AssertExpectations(t)
}

func TestAdminGroup_ForbiddenForOtherRoles(t *testing.T) {
	ts := setup(t)

	rec := ts.request(t, http.MethodGet, "/api/admin/analytics", makeToken(t, 1, model.RolePatient), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/admin/doctors", makeToken(t, 2, model.RoleDoctor), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ts.analyticsSvc.AssertNotCalled(t, "Report")
	ts.userSvc.AssertNotCalled(t, "ListDoctorsFull")
}

func TestAdminAnalyticsEndpoint(t *testing.T) {
	ts := setup(t)

	ts.analyticsSvc.On("Report", mock.Anything).Return(&model.AnalyticsReport{
		TotalPatients: 3,
		TotalDoctors:  2,
		MonthlyAppointments: []model.MonthlyCount{
			{Year: 2025, Month: 5, Count: 4},
		},
	}, nil)

	rec := ts.request(t, http.MethodGet, "/api/admin/analytics", makeToken(t, 9, model.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_patients":3`)
	ts.analyticsSvc.AssertExpectations(t)
}

func TestDoctorDirectoryEndpoint(t *testing.T) {
	ts := setup(t)

	ts.userSvc.On("ListDoctors", mock.Anything).Return([]model.DoctorView{
		{ID: 2, Name: "Bob", Email: "bob@example.com", Specialization: "Cardiology"},
	}, nil)

	// Any authenticated role may browse the directory.
	for _, role := range []model.Role{model.RolePatient, model.RoleDoctor, model.RoleAdmin} {
		rec := ts.request(t, http.MethodGet, "/api/appointments/doctors", makeToken(t, 1, role), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cardiology")
	}
}
