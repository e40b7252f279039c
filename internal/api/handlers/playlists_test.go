package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/clipstream/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistHandler_Lifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)

	var playlistID string

	t.Run("create", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/playlists"),
			map[string]string{"name": "Weekend watch", "description": "long takes"}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var playlist struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		testutil.DecodeData(t, resp, &playlist)
		assert.Equal(t, "Weekend watch", playlist.Name)
		playlistID = playlist.ID
	})

	t.Run("add a video, reject the duplicate", func(t *testing.T) {
		url := ts.APIURL(fmt.Sprintf("/playlists/add/%s/%s", video.ID, playlistID))

		req := testutil.CreateAuthenticatedRequest(t, "PATCH", url, nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		dup := testutil.CreateAuthenticatedRequest(t, "PATCH", url, nil, token)
		dupResp, err := http.DefaultClient.Do(dup)
		require.NoError(t, err)
		defer dupResp.Body.Close()
		testutil.AssertErrorResponse(t, dupResp, http.StatusConflict, "")
	})

	t.Run("the playlist view resolves its videos", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL(fmt.Sprintf("/playlists/%s", playlistID)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view struct {
			Playlist struct {
				Name string `json:"name"`
			} `json:"playlist"`
			Videos []struct {
				ID string `json:"id"`
			} `json:"videos"`
		}
		testutil.DecodeData(t, resp, &view)
		assert.Equal(t, "Weekend watch", view.Playlist.Name)
		require.Len(t, view.Videos, 1)
		assert.Equal(t, video.ID.String(), view.Videos[0].ID)
	})

	t.Run("remove the video", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "PATCH",
			ts.APIURL(fmt.Sprintf("/playlists/remove/%s/%s", video.ID, playlistID)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		again, err := http.DefaultClient.Do(testutil.CreateAuthenticatedRequest(t, "PATCH",
			ts.APIURL(fmt.Sprintf("/playlists/remove/%s/%s", video.ID, playlistID)), nil, token))
		require.NoError(t, err)
		defer again.Body.Close()
		testutil.AssertErrorResponse(t, again, http.StatusNotFound, "")
	})

	t.Run("delete", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL(fmt.Sprintf("/playlists/%s", playlistID)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		gone, err := http.Get(ts.APIURL(fmt.Sprintf("/playlists/%s", playlistID)))
		require.NoError(t, err)
		defer gone.Body.Close()
		testutil.AssertErrorResponse(t, gone, http.StatusNotFound, "")
	})
}
