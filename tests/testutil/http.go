package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the typed form of dto.Response used to decode responses in tests.
type Envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

// HTTPTestCase represents a test case for HTTP handler testing.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           any
	Headers        map[string]string
	ExpectedStatus int
	ExpectedCode   string
	Setup          func(t *testing.T, tc *TestContext)
	Validate       func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs a slice of HTTP test cases against a handler.
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase runs a single HTTP test case.
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	testCtx := NewTestContextWithRequest(t, newRequest(t, tc.Method, tc.Path, tc.Body, tc.Headers))
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(testCtx.Context)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, testCtx.ResponseCode(), "Unexpected status code")
	}
	if tc.ExpectedCode != "" {
		AssertErrorResponse(t, testCtx.Recorder, tc.ExpectedCode)
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

// DoJSON sends a request through handler h and returns the recorder.
// A non-nil body is encoded as JSON.
func DoJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(t, method, path, body, headers))
	return w
}

func newRequest(t *testing.T, method, path string, body any, headers map[string]string) *http.Request {
	t.Helper()

	if method == "" {
		method = http.MethodGet
	}
	if path == "" {
		path = "/"
	}

	var reader io.Reader
	if body != nil {
		reader = ToJSONReader(t, body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// DecodeEnvelope parses the response body into an Envelope carrying T.
func DecodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) Envelope[T] {
	t.Helper()

	var env Envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Failed to parse JSON response: %s", w.Body.String())
	return env
}

// AssertSuccessResponse asserts the response is a successful API response.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	env := DecodeEnvelope[json.RawMessage](t, w)
	assert.True(t, env.Success, "Expected success to be true")
	assert.Nil(t, env.Error, "Expected no error")
}

// AssertErrorResponse asserts the response is an error API response with expectedCode.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	env := DecodeEnvelope[json.RawMessage](t, w)
	assert.False(t, env.Success, "Expected success to be false")
	require.NotNil(t, env.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, env.Error.Code, "Unexpected error code")
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
