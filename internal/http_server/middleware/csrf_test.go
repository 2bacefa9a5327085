package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func performRequest(t *testing.T, method string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := CsrfHeaderMiddleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	request := httptest.NewRequest(method, "/api/sites", nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	if err := handler(e.NewContext(request, recorder)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return recorder
}

func TestCsrfHeaderMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		headers  map[string]string
		expected int
	}{
		{"get without header", http.MethodGet, nil, http.StatusOK},
		{"head without header", http.MethodHead, nil, http.StatusOK},
		{"post without header", http.MethodPost, nil, http.StatusForbidden},
		{"put without header", http.MethodPut, nil, http.StatusForbidden},
		{"delete without header", http.MethodDelete, nil, http.StatusForbidden},
		{"post with header", http.MethodPost, map[string]string{RequestedWithHeader: "XMLHttpRequest"}, http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := performRequest(t, test.method, test.headers)
			if recorder.Code != test.expected {
				t.Errorf("status = %d; expected %d", recorder.Code, test.expected)
			}
			if test.expected == http.StatusForbidden && !strings.Contains(recorder.Body.String(), "CSRF_HEADER_MISSING") {
				t.Errorf("body = %q; expected csrf code", recorder.Body.String())
			}
		})
	}
}
