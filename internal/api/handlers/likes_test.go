package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/clipstream/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toggleLikeResponse struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

func TestLikeHandler_ToggleVideoLike(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	toggle := func(token string) *http.Response {
		req := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL(fmt.Sprintf("/likes/toggle/v/%s", video.ID)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("first toggle likes", func(t *testing.T) {
		resp := toggle(token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result toggleLikeResponse
		testutil.DecodeData(t, resp, &result)
		assert.True(t, result.Liked)
		assert.Equal(t, int64(1), result.TotalLikes)
	})

	t.Run("second toggle unlikes", func(t *testing.T) {
		resp := toggle(token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result toggleLikeResponse
		testutil.DecodeData(t, resp, &result)
		assert.False(t, result.Liked)
		assert.Equal(t, int64(0), result.TotalLikes)
	})

	t.Run("anonymous toggle is unauthorized", func(t *testing.T) {
		resp := toggle("")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed target id is a bad request", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL("/likes/toggle/v/not-a-uuid"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "")
	})
}

func TestLikeHandler_LikedVideos(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	v1 := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	v2 := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	for _, id := range []fmt.Stringer{v1.ID, v2.ID} {
		req := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL(fmt.Sprintf("/likes/toggle/v/%s", id)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req := testutil.CreateAuthenticatedRequest(t, "GET", ts.APIURL("/likes/videos"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var videos []struct {
		ID    string `json:"id"`
		Owner *struct {
			Username string `json:"username"`
		} `json:"owner"`
	}
	testutil.DecodeData(t, resp, &videos)
	require.Len(t, videos, 2)
	require.NotNil(t, videos[0].Owner)
	assert.Equal(t, owner.Username, videos[0].Owner.Username)
}
