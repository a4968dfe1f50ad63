package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelfuse/internal/enrichment"
	"travelfuse/internal/handler"
	"travelfuse/internal/parser"
	"travelfuse/internal/planner"
	"travelfuse/internal/router"
	"travelfuse/internal/service"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	p := planner.New(planner.DefaultConfig(), parser.DefaultModules(), nil, enrichment.NewDefaultFetcher())
	svc := service.NewPlanService(p, nil, 0)
	return router.Setup(handler.NewPlanHandler(svc, "csv"), handler.NewHealthHandler([]string{"default"}), []string{"http://localhost:3000"})
}

func TestRouter_ParsePlan(t *testing.T) {
	r := newEngine()

	body := `{"content":"成都美食之旅\n\nDay 1\n- **中午** 品尝火锅，人均120元","metadata":{"id":"p1","destination":"成都","total_days":1}}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/plans/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Succeeded bool `json:"succeeded"`
			Data      struct {
				ID       string `json:"id"`
				Overview string `json:"overview"`
				Timeline []struct {
					Period string `json:"period"`
					Cost   int    `json:"cost"`
				} `json:"timeline"`
			} `json:"data"`
			Provenance map[string]string `json:"provenance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Succeeded)
	assert.Equal(t, "p1", resp.Data.Data.ID)
	assert.Equal(t, "成都美食之旅", resp.Data.Data.Overview)
	require.Len(t, resp.Data.Data.Timeline, 1)
	assert.Equal(t, "noon", resp.Data.Data.Timeline[0].Period)
	assert.Equal(t, 120, resp.Data.Data.Timeline[0].Cost)
	assert.Equal(t, "default", resp.Data.Provenance["tips.safety"])
}

func TestRouter_Health(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ExportCSV(t *testing.T) {
	r := newEngine()

	body := `{"content":"- **上午** 参观宽窄巷子","metadata":{"title":"成都","destination":"成都"},"format":"csv"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/plans/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "参观宽窄巷子")
}

func TestRouter_HandlerAnnotationsMatchRoutes(t *testing.T) {
	registered := map[string]bool{}
	for _, ri := range newEngine().Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	files, err := filepath.Glob("../handler/*_handler.go")
	require.NoError(t, err)
	routeRe := regexp.MustCompile(`// @Router (\S+) \[(\w+)\]`)

	annotated := 0
	for _, f := range files {
		src, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, m := range routeRe.FindAllStringSubmatch(string(src), -1) {
			annotated++
			method := strings.ToUpper(m[2])
			assert.True(t, registered[method+" "+m[1]] || registered[method+" /api/v1"+m[1]], "%s %s in %s", method, m[1], f)
		}
	}
	assert.Equal(t, len(registered), annotated)
}
