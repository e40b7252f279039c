package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/clipstream/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetHandler_Lifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	author, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	var tweetID string

	t.Run("create", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/tweets"),
			map[string]string{"content": "shipping it"}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var tweet struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		}
		testutil.DecodeData(t, resp, &tweet)
		assert.Equal(t, "shipping it", tweet.Content)
		tweetID = tweet.ID
	})

	t.Run("list by user", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL(fmt.Sprintf("/tweets/user/%s", author.ID)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Tweets []struct {
				ID string `json:"id"`
			} `json:"tweets"`
			Total int64 `json:"total"`
		}
		testutil.DecodeData(t, resp, &page)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Tweets, 1)
		assert.Equal(t, tweetID, page.Tweets[0].ID)
	})

	t.Run("update by a stranger is forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "PATCH",
			ts.APIURL(fmt.Sprintf("/tweets/%s", tweetID)),
			map[string]string{"content": "hijacked"}, strangerToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "")
	})

	t.Run("owner updates then deletes", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "PATCH",
			ts.APIURL(fmt.Sprintf("/tweets/%s", tweetID)),
			map[string]string{"content": "edited"}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		del := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL(fmt.Sprintf("/tweets/%s", tweetID)), nil, token)
		delResp, err := http.DefaultClient.Do(del)
		require.NoError(t, err)
		defer delResp.Body.Close()
		assert.Equal(t, http.StatusOK, delResp.StatusCode)
	})
}
