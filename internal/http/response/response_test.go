package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body
}

func TestErrorCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-9")

	Error(c, CodeTooManyRequests, "slow down")

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status_code"] != float64(CodeTooManyRequests) {
		t.Fatalf("status_code want 429 got %v", body["status_code"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["request_id"] != "req-9" {
		t.Fatalf("data should carry request_id, got %v", body["data"])
	}
	if _, exists := body["pagination"]; exists {
		t.Fatalf("error response should not include pagination")
	}
}

func TestErrorWithoutRequestIDHasNullData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Forbidden(c, "no")

	body := decodeBody(t, w)
	if body["data"] != nil {
		t.Fatalf("data want null got %v", body["data"])
	}
	if body["status_code"] != float64(CodeForbidden) {
		t.Fatalf("status_code want 403 got %v", body["status_code"])
	}
}

func TestSuccessWithPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []int{1, 2}, NewPagination(2, 20, 41))

	body := decodeBody(t, w)
	pagination, ok := body["pagination"].(map[string]interface{})
	if !ok {
		t.Fatalf("pagination missing: %v", body)
	}
	if pagination["total_page"] != float64(3) || pagination["page"] != float64(2) {
		t.Fatalf("unexpected pagination %v", pagination)
	}
}

func TestNewPaginationWithoutPageSize(t *testing.T) {
	p := NewPagination(1, 0, 10)
	if p.TotalPage != 0 {
		t.Fatalf("total page want 0 got %d", p.TotalPage)
	}
}
