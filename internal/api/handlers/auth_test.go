package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/clipstream/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerFields(values map[string]string, withAvatar bool) []testutil.MultipartField {
	fields := make([]testutil.MultipartField, 0, len(values)+1)
	for name, value := range values {
		fields = append(fields, testutil.MultipartField{Name: name, Value: value})
	}
	if withAvatar {
		fields = append(fields, testutil.MultipartField{
			Name:     "avatar",
			Filename: "avatar.png",
			Content:  []byte("fake png bytes"),
		})
	}
	return fields
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		values         map[string]string
		withAvatar     bool
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			values: map[string]string{
				"fullName": "New User",
				"email":    "new@example.com",
				"username": "NewUser",
				"password": "password123",
			},
			withAvatar:     true,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.DecodeData(t, resp, &result)
				// Usernames are lowercased on the way in.
				assert.Equal(t, "newuser", result.User.Username)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
			},
		},
		{
			name: "missing avatar",
			values: map[string]string{
				"fullName": "No Avatar",
				"email":    "noavatar@example.com",
				"username": "noavatar",
				"password": "password123",
			},
			withAvatar:     false,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			values: map[string]string{
				"fullName": "No Password",
				"email":    "nopass@example.com",
				"username": "nopass",
			},
			withAvatar:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			values: map[string]string{
				"fullName": "Copy Cat",
				"email":    "copycat@example.com",
				"username": "existinguser",
				"password": "password123",
			},
			withAvatar: true,
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "duplicate email",
			values: map[string]string{
				"fullName": "Copy Cat",
				"email":    "taken@example.com",
				"username": "freshname",
				"password": "password123",
			},
			withAvatar: true,
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			req := testutil.CreateMultipartRequest(t, "POST", ts.APIURL("/auth/register"),
				registerFields(tt.values, tt.withAvatar), "")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "login by username",
			request: map[string]string{
				"username": user.Username,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.DecodeData(t, resp, &result)
				assert.Equal(t, user.Username, result.User.Username)
				assert.NotEmpty(t, result.AccessToken)
			},
		},
		{
			name: "login by email",
			request: map[string]string{
				"email":    user.Email,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid password",
			request: map[string]string{
				"username": user.Username,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "non-existent user",
			request: map[string]string{
				"username": "nonexistent",
				"password": "anypassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing identifier",
			request: map[string]string{
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_RefreshRotation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	login := func() testutil.AuthResponse {
		body, _ := json.Marshal(map[string]string{"username": user.Username, "password": password})
		resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result testutil.AuthResponse
		testutil.DecodeData(t, resp, &result)
		return result
	}

	refresh := func(token string) *http.Response {
		body, _ := json.Marshal(map[string]string{"refreshToken": token})
		resp, err := http.Post(ts.APIURL("/auth/refresh-token"), "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		return resp
	}

	first := login()

	// A valid refresh token is exchanged for a new pair.
	resp := refresh(first.RefreshToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rotated testutil.AuthResponse
	testutil.DecodeData(t, resp, &rotated)
	assert.NotEmpty(t, rotated.RefreshToken)
	assert.NotEqual(t, first.RefreshToken, rotated.RefreshToken)

	// The superseded token fails closed.
	reuse := refresh(first.RefreshToken)
	defer reuse.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, reuse.StatusCode)

	// Garbage is rejected too.
	garbage := refresh("not.a.jwt")
	defer garbage.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, garbage.StatusCode)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("me returns the public profile", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "GET", ts.APIURL("/auth/me"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		}
		testutil.DecodeData(t, resp, &result)
		assert.Equal(t, user.ID.String(), result.ID)
		assert.Equal(t, user.Username, result.Username)
	})

	t.Run("me without a token is unauthorized", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "GET", ts.APIURL("/auth/me"), nil, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout clears the stored refresh token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/auth/logout"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		fresh, err := ts.Repos.User.GetByID(req.Context(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, fresh.RefreshTokenHash)
	})
}
