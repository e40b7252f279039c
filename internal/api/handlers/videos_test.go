package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/clipstream/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoPageResponse struct {
	Videos []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Owner *struct {
			Username string `json:"username"`
		} `json:"owner"`
	} `json:"videos"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
}

func TestVideoHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	testutil.SeedVideos(t, ts.DB.DB, owner, 15)

	get := func(query string) videoPageResponse {
		resp, err := http.Get(ts.APIURL("/videos" + query))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page videoPageResponse
		testutil.DecodeData(t, resp, &page)
		return page
	}

	t.Run("default page", func(t *testing.T) {
		page := get("")
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, int64(15), page.Total)
		assert.Len(t, page.Videos, 10)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		page := get("?page=2&limit=10")
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Videos, 5)
	})

	t.Run("out-of-range inputs are clamped", func(t *testing.T) {
		page := get("?page=-5&limit=0")
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Videos, 10)
	})

	t.Run("owner profile rides along", func(t *testing.T) {
		page := get("?limit=1")
		require.Len(t, page.Videos, 1)
		require.NotNil(t, page.Videos[0].Owner)
		assert.Equal(t, owner.Username, page.Videos[0].Owner.Username)
	})
}

func TestVideoHandler_GetCountsViews(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)

	var got struct {
		ID    string `json:"id"`
		Views int64  `json:"views"`
	}

	for want := int64(1); want <= 2; want++ {
		resp, err := http.Get(ts.APIURL(fmt.Sprintf("/videos/%s", video.ID)))
		require.NoError(t, err)
		testutil.DecodeData(t, resp, &got)
		resp.Body.Close()
		assert.Equal(t, want, got.Views)
	}
}

func TestVideoHandler_AuthenticatedGetRecordsHistory(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	req := testutil.CreateAuthenticatedRequest(t, "GET",
		ts.APIURL(fmt.Sprintf("/videos/%s", video.ID)), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	histReq := testutil.CreateAuthenticatedRequest(t, "GET", ts.APIURL("/users/history"), nil, token)
	histResp, err := http.DefaultClient.Do(histReq)
	require.NoError(t, err)
	defer histResp.Body.Close()
	require.Equal(t, http.StatusOK, histResp.StatusCode)

	var history []struct {
		ID string `json:"id"`
	}
	testutil.DecodeData(t, histResp, &history)
	require.Len(t, history, 1)
	assert.Equal(t, video.ID.String(), history[0].ID)
}

func TestVideoHandler_MutationsRequireOwnership(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("update by a stranger is forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "PATCH",
			ts.APIURL(fmt.Sprintf("/videos/%s", video.ID)),
			map[string]string{"title": "Hijacked"}, strangerToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "")
	})

	t.Run("delete by a stranger is forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL(fmt.Sprintf("/videos/%s", video.ID)), nil, strangerToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "")
	})

	t.Run("anonymous publish is unauthorized", func(t *testing.T) {
		req := testutil.CreateMultipartRequest(t, "POST", ts.APIURL("/videos"),
			[]testutil.MultipartField{{Name: "title", Value: "Nope"}}, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestVideoHandler_Publish(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	fields := []testutil.MultipartField{
		{Name: "title", Value: "My first upload"},
		{Name: "description", Value: "Shot on a potato"},
		{Name: "duration", Value: "93.5"},
		{Name: "videoFile", Filename: "clip.mp4", Content: []byte("fake mp4 bytes")},
		{Name: "thumbnail", Filename: "thumb.png", Content: []byte("fake png bytes")},
	}

	req := testutil.CreateMultipartRequest(t, "POST", ts.APIURL("/videos"), fields, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var video struct {
		ID              string  `json:"id"`
		Title           string  `json:"title"`
		VideoURL        string  `json:"videoUrl"`
		ThumbnailURL    string  `json:"thumbnailUrl"`
		DurationSeconds float64 `json:"durationSeconds"`
		IsPublished     bool    `json:"isPublished"`
	}
	testutil.DecodeData(t, resp, &video)
	assert.Equal(t, "My first upload", video.Title)
	assert.NotEmpty(t, video.VideoURL)
	assert.NotEmpty(t, video.ThumbnailURL)
	assert.Equal(t, 93.5, video.DurationSeconds)
	assert.True(t, video.IsPublished)

	t.Run("missing files are rejected", func(t *testing.T) {
		req := testutil.CreateMultipartRequest(t, "POST", ts.APIURL("/videos"),
			[]testutil.MultipartField{{Name: "title", Value: "No media"}}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "")
	})
}
