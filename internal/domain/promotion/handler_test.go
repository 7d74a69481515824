package promotion

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewHandler(newTestService(t)))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Lifecycle(t *testing.T) {
	r := setupRouter(t)
	start, end := testNow.Add(-1e9).UnixMilli(), testNow.Add(1e9).UnixMilli()

	body, _ := json.Marshal(map[string]any{
		"img_url":    "https://cdn.example.com/promo.png",
		"start_time": start,
		"end_time":   end,
	})
	w := doJSON(r, http.MethodPost, "/promotions", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created Promotion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, start, created.StartTime)

	w = doJSON(r, http.MethodGet, "/promotions/active", "")
	require.Equal(t, http.StatusOK, w.Code)
	var active []Promotion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	require.Len(t, active, 1)

	w = doJSON(r, http.MethodPatch, "/promotions/"+created.ID, `{"img_url": null, "end_time": `+jsonInt(end+1000)+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var patched Promotion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Equal(t, created.ImageURL, patched.ImageURL)
	assert.Equal(t, end+1000, patched.EndTime)

	w = doJSON(r, http.MethodDelete, "/promotions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/promotions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Validation(t *testing.T) {
	r := setupRouter(t)

	cases := map[string]struct {
		body string
		code int
	}{
		"bad json":       {`{`, http.StatusBadRequest},
		"missing img":    {`{"start_time": 1, "end_time": 2}`, http.StatusUnprocessableEntity},
		"missing end":    {`{"img_url": "https://x/y.png", "start_time": 1}`, http.StatusUnprocessableEntity},
		"negative start": {`{"img_url": "https://x/y.png", "start_time": -1, "end_time": 2}`, http.StatusUnprocessableEntity},
		"inverted":       {`{"img_url": "https://x/y.png", "start_time": 5, "end_time": 2}`, http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/promotions", tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}

	w := doJSON(r, http.MethodGet, "/promotions/active?limit=0", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestHandler_SingularPrefix(t *testing.T) {
	r := setupRouter(t)
	start, end := testNow.Add(-1e9).UnixMilli(), testNow.Add(1e9).UnixMilli()

	body, _ := json.Marshal(map[string]any{
		"img_url":    "https://cdn.example.com/promo.png",
		"start_time": start,
		"end_time":   end,
	})
	w := doJSON(r, http.MethodPost, "/promotion", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created Promotion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodGet, "/promotion/active", "")
	require.Equal(t, http.StatusOK, w.Code)
	var active []Promotion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	require.Len(t, active, 1)

	w = doJSON(r, http.MethodGet, "/promotions/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/promotion/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
