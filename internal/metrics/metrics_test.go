package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAcceptance_CountsOrdersOnlyOnSuccess(t *testing.T) {
	ordersBefore := testutil.ToFloat64(OrdersCreated)
	conflictsBefore := testutil.ToFloat64(Acceptances.WithLabelValues(ResultConflict))

	ObserveAcceptance(ResultConflict, time.Now())
	ObserveAcceptance(ResultSuccess, time.Now())

	assert.Equal(t, ordersBefore+1, testutil.ToFloat64(OrdersCreated))
	assert.Equal(t, conflictsBefore+1, testutil.ToFloat64(Acceptances.WithLabelValues(ResultConflict)))
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/projects/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/projects/:id", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/123", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/projects/:id", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "bidding_http_requests_total"))
}
