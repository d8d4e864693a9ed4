package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	intconfig "marketdash/internal/config"
	"marketdash/internal/gateway"
	h "marketdash/internal/http/handlers"
	"marketdash/internal/poller"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// marketplace is a fake remote API. Writes are recorded by path.
type marketplace struct {
	mu       sync.Mutex
	writes   map[string][]string
	failList atomic.Bool
	checkout func(w http.ResponseWriter)
}

func (m *marketplace) onCheckout(fn func(w http.ResponseWriter)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkout = fn
}

func (m *marketplace) record(path, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writes == nil {
		m.writes = map[string][]string{}
	}
	m.writes[path] = append(m.writes[path], body)
}

func (m *marketplace) written(path string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes[path]...)
}

func (m *marketplace) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		body, _ := io.ReadAll(r.Body)
		m.record(r.URL.Path, string(body))
		m.mu.Lock()
		checkout := m.checkout
		m.mu.Unlock()
		if r.URL.Path == "/payments/checkout" && checkout != nil {
			checkout(w)
			return
		}
		_, _ = io.WriteString(w, `{"message":"ok"}`)
		return
	}
	if m.failList.Load() && r.URL.Path == "/products" {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"database down"}`)
		return
	}
	switch r.URL.Path {
	case "/products":
		_, _ = io.WriteString(w, `{"data":[
			{"id":"p1","title":"USA WhatsApp number","category":"social","price":"4.49","status":"active","createdAt":"2024-03-01T10:00:00Z"},
			{"id":"p2","title":"Netflix","category":"streaming","price":92,"status":"active","createdAt":"2024-03-03T10:00:00Z"},
			{"id":"p3","title":"Telegram","category":"social","price":"0.99","status":"pending","createdAt":"2024-03-02T10:00:00Z"}
		]}`)
	case "/orders":
		_, _ = io.WriteString(w, `[
			{"id":"o1","productTitle":"Netflix","amount":"100","commission":"10","status":"completed","deliveryStatus":""},
			{"id":"o2","productTitle":"Spotify","amount":"60.5","commission":"6.05","status":"completed","deliveryStatus":"delivered"}
		]`)
	case "/payments":
		_, _ = io.WriteString(w, `[
			{"id":"1","amount":100,"status":"successful"},
			{"id":"2","amount":"50","status":"pending","credited":true},
			{"id":"3","amount":"25","status":"failed"}
		]`)
	case "/withdrawals":
		_, _ = io.WriteString(w, `[{"id":"w1","amount":"20","status":"approved"},{"id":"w2","amount":"30","status":"approved","userId":"x"}]`)
	case "/users":
		_, _ = io.WriteString(w, `[]`)
	case "/cart":
		_, _ = io.WriteString(w, `{"data":[{"id":"c1","price":"4.49"},{"id":"c2","price":"92.00"},{"id":"c3","price":"0.99"}]}`)
	case "/shipments/s1":
		_, _ = io.WriteString(w, `{"data":{"id":"s1","trackingNumber":"TRK1","currentStep":2}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	}
}

type harness struct {
	router *gin.Engine
	remote *marketplace
	env    intconfig.Env
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	remote := &marketplace{}
	upstream := httptest.NewServer(remote)
	t.Cleanup(upstream.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	env := intconfig.Env{
		APIBaseURL:        upstream.URL,
		FetchTimeout:      2 * time.Second,
		PollInterval:      time.Minute,
		CurrencySymbol:    "$",
		JWTSecret:         "test-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	}
	client := gateway.New(env.APIBaseURL, "", env.FetchTimeout)
	now := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	refresher := poller.NewRefresher(client, nil)
	refresher.Now = now

	srv := &h.Server{
		API:       client,
		Refresher: refresher,
		Config:    func() intconfig.Env { return env },
		Now:       now,
	}
	return &harness{router: NewRouter(srv), remote: remote, env: env}
}

func (hs *harness) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	hs.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndNoRoute(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = hs.do(http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProductsFiltersSortsAndPages(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/products?category=social&sort=amount&dir=desc", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 2, page["total_count"])
	items := page["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].(map[string]any)["id"])
	assert.Equal(t, "p3", items[1].(map[string]any)["id"])
	assert.Nil(t, body["load_error"])
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/products?q=whatsapp", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)["page"].(map[string]any)
	assert.EqualValues(t, 1, page["total_count"])
}

func TestListFetchFailureRendersLoadError(t *testing.T) {
	hs := newHarness(t)
	hs.remote.failList.Store(true)
	w := hs.do(http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "failed to load products", body["load_error"])
	assert.Empty(t, body["page"].(map[string]any)["items"])
}

func TestListRejectsBadFilter(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/orders?from=yesterday", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["code"])
}

func TestExportCSV(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/products/export?format=csv&status=active", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products_20240101_000000.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Title,Category,Price,Status,Date", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "$92.00")

	w = hs.do(http.MethodGet, "/api/products/export?format=pdf", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	hs.remote.failList.Store(true)
	w = hs.do(http.MethodGet, "/api/products/export", "", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "database down", decode(t, w)["error"])
}

func TestCartAndCheckout(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/cart?buyer_id=b1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "$97.48", decode(t, w)["subtotal_display"])

	w = hs.do(http.MethodGet, "/api/cart", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = hs.do(http.MethodPost, "/api/checkout", `{"buyer_id":"b1","provider":"korapay"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	sent := hs.remote.written("/payments/checkout")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], `"amount":"97.48"`)

	hs.remote.onCheckout(func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = io.WriteString(w, `{"error":"Insufficient wallet balance"}`)
	})
	w = hs.do(http.MethodPost, "/api/checkout", `{"buyer_id":"b1","provider":"wallet"}`, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Insufficient wallet balance", decode(t, w)["error"])

	w = hs.do(http.MethodPost, "/api/checkout", `{"buyer_id":"b1","provider":"paypal"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveCartItem(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodDelete, "/api/cart/items/c2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, hs.remote.written("/cart/c2"), 1)
}

func TestDeliveryStateMachine(t *testing.T) {
	hs := newHarness(t)

	w := hs.do(http.MethodPost, "/api/orders/o1/delivery/send", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "delivery in progress", decode(t, w)["delivery_status"])
	assert.Equal(t, []string{`{"deliveryStatus":"delivery in progress"}`}, hs.remote.written("/orders/o1/status"))

	w = hs.do(http.MethodPost, "/api/orders/o1/delivery/confirm", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = hs.do(http.MethodPost, "/api/orders/o2/delivery/send", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = hs.do(http.MethodPost, "/api/orders/zz/delivery/send", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderStatusUpdate(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodPut, "/api/orders/o1/status", `{"status":"Refunded"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{`{"status":"refunded"}`}, hs.remote.written("/orders/o1/status"))

	w = hs.do(http.MethodPut, "/api/orders/o1/status", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShipmentProgress(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodGet, "/api/shipments/s1/progress", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["current_step"])
	stages := body["stages"].([]any)
	assert.Equal(t, "done", stages[1].(map[string]any)["state"])
	assert.Equal(t, "current", stages[2].(map[string]any)["state"])
}

func TestFeedbackValidatesBeforeForwarding(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodPost, "/api/ratings", `{"order_id":"o1","stars":7}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, hs.remote.written("/ratings"))

	w = hs.do(http.MethodPost, "/api/ratings", `{"order_id":"o1","stars":4,"dispute_status":"under_review"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, hs.remote.written("/ratings"), 1)

	w = hs.do(http.MethodPost, "/api/reports", `{"target_id":"p1","reason":"scam"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = hs.do(http.MethodPut, "/api/settings", `{"currency":"NGN"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = hs.do(http.MethodPost, "/api/reports", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func login(t *testing.T, hs *harness) string {
	t.Helper()
	w := hs.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hs := newHarness(t)
	w := hs.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOverview(t *testing.T) {
	hs := newHarness(t)

	w := hs.do(http.MethodGet, "/api/admin/overview", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, hs)
	w = hs.do(http.MethodGet, "/api/admin/overview", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "150", body["total_buyer_deposits"])
	assert.Equal(t, "20", body["admin_withdrawn"])
	assert.Equal(t, "30", body["seller_withdrawn"])
	assert.EqualValues(t, 1, body["pending_deposit_requests"])
	kpis := body["kpis"].([]any)
	assert.Equal(t, "$160.50", kpis[1].(map[string]any)["value"])
	assert.Equal(t, "160.5", body["completed_sales"])
	assert.Equal(t, "$160.50", body["completed_sales_display"])
	assert.Equal(t, "$16.05", body["platform_profit_display"])
	assert.Equal(t, "$150.00", body["total_buyer_deposits_display"])
	assert.Equal(t, "$20.00", body["admin_withdrawn_display"])
	assert.Equal(t, "$30.00", body["seller_withdrawn_display"])

	w = hs.do(http.MethodPost, "/api/admin/overview/refresh", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	refreshed := decode(t, w)
	assert.Equal(t, true, refreshed["applied"])
	assert.Equal(t, "admin", refreshed["requested_by"])
	assert.Equal(t, "$160.50", refreshed["overview"].(map[string]any)["completed_sales_display"])

	w = hs.do(http.MethodGet, "/api/admin/overview/history", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["snapshots"])

	w = hs.do(http.MethodGet, "/api/admin/overview/history?limit=0", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = hs.do(http.MethodGet, "/api/admin/overview/report.pdf", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = hs.do(http.MethodGet, "/api/admin/overview/report.xlsx", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "OVERVIEW_20240101_000000.xlsx")
}
