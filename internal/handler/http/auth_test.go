package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-shelf-auth/internal/app"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const registerBody = `{"name":"Alice","email":"Alice@Example.com","password":"Secur3Pass","age":30}`

func TestRegister_Success(t *testing.T) {
	ts := newTestServer(t)
	user := sampleUser(aliceID)

	ts.auth.EXPECT().Register(gomock.Any(), models.RegisterRequest{
		Name: "Alice", Email: "Alice@Example.com", Password: "Secur3Pass", Age: 30,
	}).Return(user, models.Token{SignedString: "issued-token"}, nil)

	rr := ts.do(http.MethodPost, "/api/users/register", registerBody, false)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Bearer issued-token", rr.Header().Get("Authorization"))

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "issued-token", resp.Token)
	assert.Equal(t, aliceID, resp.User.ID)
	assert.Equal(t, 1, resp.User.FollowersCount)
	assertNoSecrets(t, rr, user)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantMsg    string
		wantFields []string
	}{
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "unknown field",
			body:       `{"name":"Alice","is_admin":true}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name: "validation failure",
			body: registerBody,
			serviceErr: &validators.ValidationError{Fields: map[string]string{
				"password": "must not contain the word password",
				"email":    "is already taken",
			}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgValidationFailed,
			wantFields: []string{"password", "email"},
		},
		{
			name:       "email race lost",
			body:       registerBody,
			serviceErr: store.ErrEmailAlreadyExists,
			wantStatus: http.StatusConflict,
			wantMsg:    app.MsgEmailAlreadyExists,
		},
		{
			name:       "database down",
			body:       registerBody,
			serviceErr: store.ErrExecutingQuery,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.serviceErr != nil {
				ts.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, tt.serviceErr)
			}

			rr := ts.do(http.MethodPost, "/api/users/register", tt.body, false)

			assert.Equal(t, tt.wantStatus, rr.Code)
			body := decodeError(t, rr)
			assert.Equal(t, tt.wantMsg, body.Error)
			for _, f := range tt.wantFields {
				assert.Contains(t, body.Fields, f)
			}
			assert.Empty(t, rr.Header().Get("Authorization"))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	ts := newTestServer(t)
	user := sampleUser(aliceID)

	ts.auth.EXPECT().Login(gomock.Any(), models.Credentials{Email: "alice@example.com", Password: "Secur3Pass"}).
		Return(user, models.Token{SignedString: "new-token"}, nil)

	rr := ts.do(http.MethodPost, "/api/users/login", `{"email":"alice@example.com","password":"Secur3Pass"}`, false)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer new-token", rr.Header().Get("Authorization"))
	assertNoSecrets(t, rr, user)
}

func TestLogin_UniformFailure(t *testing.T) {
	ts := newTestServer(t)

	ts.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, service.ErrInvalidCredentials).Times(2)

	unknown := ts.do(http.MethodPost, "/api/users/login", `{"email":"nobody@x.com","password":"whatever"}`, false)
	wrong := ts.do(http.MethodPost, "/api/users/login", `{"email":"alice@example.com","password":"Wr0ng"}`, false)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
	assert.Equal(t, app.MsgUnableToLogin, decodeError(t, unknown).Error)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.expectAuthenticated(aliceID)
	ts.auth.EXPECT().Logout(gomock.Any(), aliceID, validToken).Return(nil)

	rr := ts.do(http.MethodPost, "/api/users/logout", "", true)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestLogoutAll(t *testing.T) {
	ts := newTestServer(t)
	ts.expectAuthenticated(aliceID)
	ts.auth.EXPECT().LogoutAll(gomock.Any(), aliceID).Return(int64(3), nil)

	rr := ts.do(http.MethodPost, "/api/users/logout/all", "", true)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestLogout_StoreFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.expectAuthenticated(aliceID)
	ts.auth.EXPECT().Logout(gomock.Any(), aliceID, validToken).Return(store.ErrExecutingQuery)

	rr := ts.do(http.MethodPost, "/api/users/logout", "", true)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
