package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/clipstream/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentHandler_Lifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	var commentID string

	t.Run("add a comment", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL(fmt.Sprintf("/comments/%s", video.ID)),
			map[string]string{"content": "first!"}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		}
		testutil.DecodeData(t, resp, &comment)
		assert.Equal(t, "first!", comment.Content)
		commentID = comment.ID
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL(fmt.Sprintf("/comments/%s", video.ID)),
			map[string]string{"content": "   "}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "")
	})

	t.Run("commenting a missing video is not found", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL("/comments/00000000-0000-0000-0000-0000000000aa"),
			map[string]string{"content": "hello?"}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "")
	})

	t.Run("listing joins like counts and owners", func(t *testing.T) {
		likeReq := testutil.CreateAuthenticatedRequest(t, "POST",
			ts.APIURL(fmt.Sprintf("/likes/toggle/c/%s", commentID)), nil, strangerToken)
		likeResp, err := http.DefaultClient.Do(likeReq)
		require.NoError(t, err)
		likeResp.Body.Close()
		require.Equal(t, http.StatusOK, likeResp.StatusCode)

		resp, err := http.Get(ts.APIURL(fmt.Sprintf("/comments/%s", video.ID)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Comments []struct {
				ID        string `json:"id"`
				LikeCount int64  `json:"likeCount"`
				Owner     *struct {
					Username string `json:"username"`
				} `json:"owner"`
			} `json:"comments"`
			Total int64 `json:"total"`
		}
		testutil.DecodeData(t, resp, &page)
		require.Equal(t, int64(1), page.Total)
		require.Len(t, page.Comments, 1)
		assert.Equal(t, commentID, page.Comments[0].ID)
		assert.Equal(t, int64(1), page.Comments[0].LikeCount)
		require.NotNil(t, page.Comments[0].Owner)
	})

	t.Run("update by a stranger is forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "PATCH",
			ts.APIURL(fmt.Sprintf("/comments/c/%s", commentID)),
			map[string]string{"content": "hijacked"}, strangerToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "")
	})

	t.Run("owner deletes the comment", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL(fmt.Sprintf("/comments/c/%s", commentID)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		listResp, err := http.Get(ts.APIURL(fmt.Sprintf("/comments/%s", video.ID)))
		require.NoError(t, err)
		defer listResp.Body.Close()

		var page struct {
			Total int64 `json:"total"`
		}
		testutil.DecodeData(t, listResp, &page)
		assert.Equal(t, int64(0), page.Total)
	})
}
