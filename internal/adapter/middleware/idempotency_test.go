package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"loanhub-backend/internal/infrastructure/security"
)

const (
	testKey     = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testSubject = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// helper: new Echo with a fake auth step, the middleware and a simple route
func setupEcho(rdb redis.UniversalClient, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			WithClaims(c, &security.Claims{ApplicantID: testSubject})
			return next(c)
		}
	})
	e.Use(Idempotency(rdb, ttl))
	e.POST("/loans", handler)
	e.GET("/loans", handler)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// counts calls so replays can be told apart from re-execution
func countingHandler(n *int, code int) echo.HandlerFunc {
	return func(c echo.Context) error {
		*n++
		return c.JSON(code, map[string]any{"call": *n})
	}
}

func Test_BypassOnGET(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 30*time.Second, countingHandler(&calls, http.StatusOK))
	rec := doReq(t, e, http.MethodGet, "/loans", nil, map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusOK || len(mr.Keys()) != 0 {
		t.Fatalf("GET must bypass: code=%d keys=%v", rec.Code, mr.Keys())
	}
}

func Test_NoHeader_PassesThrough(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))
	for i := 0; i < 2; i++ {
		if rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), nil); rec.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls=%d, want 2", calls)
	}
}

func Test_InvalidKey(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))
	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), map[string]string{HeaderIdempotencyKey: "NOT-VALID"})
	if rec.Code != http.StatusBadRequest || calls != 0 {
		t.Fatalf("want 400 without calling handler, got %d calls=%d", rec.Code, calls)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))
	h := map[string]string{HeaderIdempotencyKey: testKey}

	rec1 := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"loan_amount":5000}`)), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}
	rec2 := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"loan_amount":5000}`)), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d", rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() || calls != 1 {
		t.Fatalf("replay mismatch: %q vs %q (calls=%d)", rec1.Body.String(), rec2.Body.String(), calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))

	body := []byte(`{"x":1}`)
	key := buildKey(http.MethodPost, "/loans", testSubject, testKey)
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash(body), Key: testKey, CreatedAt: nowUTC()}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader(body), map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusConflict || calls != 0 {
		t.Fatalf("in-progress => want 409, got %d calls=%d", rec.Code, calls)
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))
	h := map[string]string{HeaderIdempotencyKey: testKey}

	if rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"x":1}`)), h); rec.Code != http.StatusCreated {
		t.Fatalf("first => %d", rec.Code)
	}
	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"x":2}`)), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_ServerErrorsAreNotStored(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusInternalServerError))
	h := map[string]string{HeaderIdempotencyKey: testKey}

	doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h)
	doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h)
	if calls != 2 {
		t.Fatalf("5xx must allow retry, calls=%d", calls)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusServiceUnavailable || calls != 0 {
		t.Fatalf("store unavailable => want 503, got %d calls=%d", rec.Code, calls)
	}
}

func Test_UnreadableBody_400(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))
	body := io.MultiReader(strings.NewReader(`{"a":`), iotest.ErrReader(errors.New("connection reset")))
	rec := doReq(t, e, http.MethodPost, "/loans", body, map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls != 0 || len(mr.Keys()) != 0 {
		t.Fatalf("handler calls=%d keys=%v", calls, mr.Keys())
	}
}

func Test_ChunkedBodyOverLimit_413(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := echo.New()
	e.HideBanner = true
	e.POST("/upload", countingHandler(&calls, http.StatusCreated), echomw.BodyLimit("16B"), Idempotency(rdb, time.Minute))

	// MultiReader hides the length, so the request goes out chunked
	body := io.MultiReader(strings.NewReader(strings.Repeat("x", 64)))
	rec := doReq(t, e, http.MethodPost, "/upload", body, map[string]string{HeaderIdempotencyKey: testKey})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls != 0 || len(mr.Keys()) != 0 {
		t.Fatalf("handler calls=%d keys=%v", calls, mr.Keys())
	}
}
