package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/config"
	"github.com/arnavshah/help-scheduler-go/pkg/database"
	"github.com/gin-gonic/gin"
)

type testServer struct {
	t       *testing.T
	h       *Handler
	srv     http.Handler
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("", filepath.Join(t.TempDir(), "handlers.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	cfg := config.Config{
		JWTSecret:       "test-secret",
		AdminUsername:   "manager",
		AdminPassword:   "long-password",
		SessionLifetime: time.Hour,
	}
	h, err := New(cfg, db, calendar.NewSet("2025-01-01"))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	h.Service.Now = func() time.Time { return time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC) }
	return &testServer{t: t, h: h, srv: h.Engine()}
}

func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.srv.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return w
}

func (s *testServer) login() string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", gin.H{"username": "manager", "password": "long-password"}, "")
	if w.Code != http.StatusOK {
		s.t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]any
	decode(t, w, &resp)
	if resp["current_month"] != "2024-12" {
		t.Errorf("current_month = %v", resp["current_month"])
	}
	if resp["pdf_enabled"] != false {
		t.Errorf("no font is configured, pdf_enabled = %v", resp["pdf_enabled"])
	}

	if w := s.do(http.MethodGet, "/health", nil, ""); w.Code != http.StatusOK {
		t.Errorf("health: %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/auth/login", gin.H{"username": "manager", "password": "nope"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", w.Code)
	}
	if s.login() == "" {
		t.Errorf("login returned no token")
	}
}

func TestSaveShiftRequiresToken(t *testing.T) {
	s := newTestServer(t)
	body := gin.H{"employee": "田中", "date": "2024-12-20", "draft": gin.H{"kind": "休み"}}

	if w := s.do(http.MethodPost, "/api/shifts", body, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/shifts", body, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", w.Code)
	}
}

func TestSaveAndGetShifts(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	body := gin.H{
		"year": 2024, "month": 12,
		"employee": "田中",
		"date":     "2024-12-20",
		"draft": gin.H{
			"kind": "AM可",
			"rows": []gin.H{{"time": "9-12", "store": "天文館店"}, {"time": "", "store": "谷山店"}},
		},
	}
	w := s.do(http.MethodPost, "/api/shifts", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}
	var saved struct {
		Shift string `json:"shift"`
	}
	decode(t, w, &saved)
	if saved.Shift != "AM可,9-12@天文館店" {
		t.Errorf("stored shift = %q", saved.Shift)
	}

	w = s.do(http.MethodGet, "/api/shifts?year=2024&month=12&employee="+url.QueryEscape("田中"), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	var grid struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Days  []struct {
			Date   string `json:"date"`
			Class  string `json:"class"`
			Shifts []struct {
				Shift string  `json:"shift"`
				Days  float64 `json:"days"`
			} `json:"shifts"`
		} `json:"days"`
	}
	decode(t, w, &grid)
	if grid.Start != "2024-12-16" || grid.End != "2025-01-15" || len(grid.Days) != 31 {
		t.Fatalf("unexpected window %s..%s with %d days", grid.Start, grid.End, len(grid.Days))
	}
	d := grid.Days[4]
	if d.Date != "2024-12-20" || d.Shifts[0].Shift != "AM可,9-12@天文館店" || d.Shifts[0].Days != 0.5 {
		t.Errorf("unexpected day %+v", d)
	}
	if grid.Days[0].Shifts[0].Shift != "-" {
		t.Errorf("unset cell should encode as -, got %q", grid.Days[0].Shifts[0].Shift)
	}
	if grid.Days[16].Class != "holiday" {
		t.Errorf("2025-01-01 class = %s", grid.Days[16].Class)
	}
}

func TestSaveShiftErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	tests := []struct {
		name string
		body gin.H
	}{
		{"outside month", gin.H{"year": 2024, "month": 12, "employee": "田中", "date": "2025-01-16", "draft": gin.H{"kind": "休み"}}},
		{"unknown employee", gin.H{"employee": "nobody", "date": "2024-12-20", "draft": gin.H{"kind": "休み"}}},
		{"bad date", gin.H{"employee": "田中", "date": "20-12-2024", "draft": gin.H{"kind": "休み"}}},
		{"no date", gin.H{"employee": "田中", "draft": gin.H{"kind": "休み"}}},
		{"unknown kind", gin.H{"employee": "田中", "date": "2024-12-20", "draft": gin.H{"kind": "夜勤"}}},
		{"repeat crosses month", gin.H{"year": 2024, "month": 12, "employee": "田中", "dates": []string{"2024-12-20", "2025-01-20"}, "draft": gin.H{"kind": "休み"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := s.do(http.MethodPost, "/api/shifts", tt.body, token); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRepeatSaveAndCounts(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	body := gin.H{
		"year": 2024, "month": 12,
		"employee": "前田",
		"dates":    []string{"2024-12-16", "2024-12-23", "2024-12-30"},
		"draft":    gin.H{"kind": "鹿屋"},
	}
	if w := s.do(http.MethodPost, "/api/shifts", body, token); w.Code != http.StatusOK {
		t.Fatalf("repeat save: %d %s", w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/counts?year=2024&month=12&area="+url.QueryEscape("大隅"), nil, "")
	var resp struct {
		Totals []struct {
			Employee string  `json:"employee"`
			Days     float64 `json:"days"`
		} `json:"totals"`
	}
	decode(t, w, &resp)
	if len(resp.Totals) != 3 || resp.Totals[0].Employee != "前田" || resp.Totals[0].Days != 3 {
		t.Errorf("unexpected totals %+v", resp.Totals)
	}
}

func TestHelpRequests(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	req := gin.H{"date": "2024-12-20", "store": "谷山店", "time_range": "13-17"}
	if w := s.do(http.MethodPost, "/api/help-requests", req, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("help request without token: expected 401, got %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/help-requests", req, token); w.Code != http.StatusOK {
		t.Fatalf("save request: %d %s", w.Code, w.Body.String())
	}
	bad := gin.H{"date": "2024-12-20", "store": "どこか", "time_range": "13-17"}
	if w := s.do(http.MethodPost, "/api/help-requests", bad, token); w.Code != http.StatusBadRequest {
		t.Errorf("unknown store: expected 400, got %d", w.Code)
	}

	shift := gin.H{"employee": "山下", "date": "2024-12-20", "draft": gin.H{"kind": "PM可", "rows": []gin.H{{"time": "9-12", "store": "谷山店"}}}}
	if w := s.do(http.MethodPost, "/api/shifts", shift, token); w.Code != http.StatusOK {
		t.Fatalf("save shift: %d %s", w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/help-requests?year=2024&month=12", nil, "")
	var resp struct {
		Requests []struct {
			Store  string `json:"store"`
			Filled bool   `json:"filled"`
		} `json:"requests"`
	}
	decode(t, w, &resp)
	if len(resp.Requests) != 1 || !resp.Requests[0].Filled {
		t.Errorf("request should be filled by the same-day assignment: %+v", resp.Requests)
	}
}

func TestSuggestHelpers(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	s.do(http.MethodPost, "/api/help-requests", gin.H{"date": "2024-12-21", "store": "鹿屋店", "time_range": "9-12"}, token)
	s.do(http.MethodPost, "/api/shifts", gin.H{"employee": "松元", "date": "2024-12-21", "draft": gin.H{"kind": "AM可"}}, token)

	w := s.do(http.MethodGet, "/api/help-requests/suggestions?year=2024&month=12&area="+url.QueryEscape("大隅"), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("suggestions: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Suggestions []struct {
			Store    string `json:"store"`
			Employee string `json:"employee"`
		} `json:"suggestions"`
		FairnessScore float64 `json:"fairness_score"`
	}
	decode(t, w, &resp)
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].Employee != "松元" {
		t.Errorf("unexpected suggestions %+v", resp.Suggestions)
	}
}

func TestValidateShift(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		body  gin.H
		valid bool
		shift string
	}{
		{"draft", gin.H{"draft": gin.H{"kind": "その他", "text": "研修,午後", "rows": []gin.H{{"time": "16-18", "store": "吉野店"}}}}, true, "その他,研修、午後,16-18@吉野店"},
		{"raw", gin.H{"raw": "1日可,9-18@中央駅店"}, true, "1日可,9-18@中央駅店"},
		{"unknown store", gin.H{"raw": "AM可,9-12@本店"}, false, ""},
		{"bad row", gin.H{"draft": gin.H{"kind": "AM可", "rows": []gin.H{{"time": "9,12"}}}}, false, ""},
		{"empty", gin.H{}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/shifts/validate", tt.body, "")
			var resp struct {
				Valid bool   `json:"valid"`
				Shift string `json:"shift"`
			}
			decode(t, w, &resp)
			if resp.Valid != tt.valid || resp.Shift != tt.shift {
				t.Errorf("got valid=%v shift=%q, want valid=%v shift=%q", resp.Valid, resp.Shift, tt.valid, tt.shift)
			}
		})
	}
}

func TestDefaultDate(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/shifts/default-date?year=2025&month=2", nil, "")
	var resp map[string]string
	decode(t, w, &resp)
	if resp["date"] != "2025-02-16" || resp["max"] != "2025-03-15" {
		t.Errorf("unexpected default date %v", resp)
	}
	if w := s.do(http.MethodGet, "/api/shifts/default-date?year=2025&month=13", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid month: expected 400, got %d", w.Code)
	}
}

func TestReports(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/reports/help.xlsx?year=2024&month=12", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("xlsx: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxType {
		t.Errorf("content type = %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "filename*=UTF-8''") {
		t.Errorf("content disposition = %s", cd)
	}

	if w := s.do(http.MethodGet, "/api/reports/help.pdf?year=2024&month=12", nil, ""); w.Code != http.StatusInternalServerError {
		t.Errorf("pdf without font: expected 500, got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/reports/employee.pdf?employee=nobody", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("unknown employee: expected 400, got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/reports/store.pdf?store=nowhere", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("unknown store: expected 400, got %d", w.Code)
	}
}

func TestHelpPageKeepsState(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/help?year=2024&month=11", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ページ 1 / 2") {
		t.Fatalf("first page: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}

	w = s.do(http.MethodGet, "/help?nav=next&area="+url.QueryEscape("鹿児島"), nil, "")
	if !strings.Contains(w.Body.String(), "ページ 2 / 2") {
		t.Errorf("next should move to page 2")
	}
	if !strings.Contains(w.Body.String(), "2024年11月") {
		t.Errorf("the selected month should be kept in the session")
	}

	w = s.do(http.MethodGet, "/help?area="+url.QueryEscape("鹿児島"), nil, "")
	if !strings.Contains(w.Body.String(), "ページ 2 / 2") {
		t.Errorf("page should be kept in the session")
	}
	w = s.do(http.MethodGet, "/help?area="+url.QueryEscape("大隅"), nil, "")
	if !strings.Contains(w.Body.String(), "ページ 1 / 2") {
		t.Errorf("each area keeps its own page")
	}
}

func TestRequestsPage(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/requests", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ヘルプ希望はありません。") {
		t.Errorf("empty requests page: %d", w.Code)
	}
}
