package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-shelf-auth/internal/app"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	user := sampleUser(aliceID)
	ts.expectAuthenticated(aliceID)
	ts.users.EXPECT().Get(gomock.Any(), aliceID).Return(user, nil)

	rr := ts.do(http.MethodGet, "/api/users/me", "", true)

	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	for _, key := range []string{"name", "email", "user_type"} {
		assert.Contains(t, got, key)
	}
	for _, key := range []string{"password_hash", "tokens", "avatar_url"} {
		assert.NotContains(t, got, key)
	}
	assertNoSecrets(t, rr, user)
}

func TestUpdateProfile(t *testing.T) {
	ts := newTestServer(t)
	updated := sampleUser(aliceID)
	updated.Name = "Alicia"
	ts.expectAuthenticated(aliceID)
	ts.users.EXPECT().UpdateProfile(gomock.Any(), aliceID, gomock.Any()).
		DoAndReturn(func(_ any, _ string, upd models.ProfileUpdate) (models.User, error) {
			require.NotNil(t, upd.Name)
			assert.Equal(t, "Alicia", *upd.Name)
			assert.Nil(t, upd.Password)
			assert.Nil(t, upd.Email)
			return updated, nil
		})

	rr := ts.do(http.MethodPatch, "/api/users/me", `{"name":"Alicia"}`, true)

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.PublicUser
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Alicia", got.Name)
	assertNoSecrets(t, rr, updated)
}

func TestUpdateProfile_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"nothing to update", service.ErrNothingToUpdate, http.StatusBadRequest, app.MsgNothingToUpdate},
		{"version conflict after retries", store.ErrVersionConflict, http.StatusConflict, app.MsgVersionConflict},
		{"email taken by race", store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},
		{"account deleted meanwhile", store.ErrUserNotFound, http.StatusNotFound, app.MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.expectAuthenticated(aliceID)
			ts.users.EXPECT().UpdateProfile(gomock.Any(), aliceID, gomock.Any()).Return(models.User{}, tt.serviceErr)

			rr := ts.do(http.MethodPatch, "/api/users/me", `{"age":31}`, true)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rr).Error)
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.expectAuthenticated(aliceID)
	ts.users.EXPECT().Delete(gomock.Any(), aliceID).Return(nil)

	rr := ts.do(http.MethodDelete, "/api/users/me", "", true)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestGetUser(t *testing.T) {
	ts := newTestServer(t)
	bob := sampleUser(bobID)
	ts.expectAuthenticated(aliceID)
	ts.users.EXPECT().Get(gomock.Any(), bobID).Return(bob, nil)

	rr := ts.do(http.MethodGet, "/api/users/"+bobID, "", true)

	require.Equal(t, http.StatusOK, rr.Code)
	assertNoSecrets(t, rr, bob)
}

func TestGetUser_InvalidID(t *testing.T) {
	ts := newTestServer(t)
	ts.expectAuthenticated(aliceID)

	rr := ts.do(http.MethodGet, "/api/users/not-a-uuid", "", true)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgInvalidUserID, decodeError(t, rr).Error)
}

func TestGetUser_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.expectAuthenticated(aliceID)
	ts.users.EXPECT().Get(gomock.Any(), bobID).Return(models.User{}, store.ErrUserNotFound)

	rr := ts.do(http.MethodGet, "/api/users/"+bobID, "", true)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFollowUnfollow(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		serviceErr error
		wantStatus int
	}{
		{"follow", http.MethodPost, nil, http.StatusNoContent},
		{"follow twice", http.MethodPost, store.ErrAlreadyFollowing, http.StatusConflict},
		{"follow self", http.MethodPost, store.ErrSelfFollow, http.StatusBadRequest},
		{"follow unknown", http.MethodPost, store.ErrUserNotFound, http.StatusNotFound},
		{"unfollow", http.MethodDelete, nil, http.StatusNoContent},
		{"unfollow not following", http.MethodDelete, store.ErrNotFollowing, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.expectAuthenticated(aliceID)
			if tt.method == http.MethodPost {
				ts.users.EXPECT().Follow(gomock.Any(), aliceID, bobID).Return(tt.serviceErr)
			} else {
				ts.users.EXPECT().Unfollow(gomock.Any(), aliceID, bobID).Return(tt.serviceErr)
			}

			rr := ts.do(tt.method, "/api/users/"+bobID+"/follow", "", true)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestSetUserType(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"admin", nil, http.StatusNoContent},
		{"not admin", service.ErrForbidden, http.StatusForbidden},
		{"unknown target", store.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.expectAuthenticated(aliceID)
			ts.users.EXPECT().SetUserType(gomock.Any(), aliceID, bobID, models.UserTypeAuthor).Return(tt.serviceErr)

			rr := ts.do(http.MethodPut, "/api/admin/users/"+bobID+"/type", `{"user_type":"author"}`, true)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
