package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"emporia/cart"
	"emporia/globals"
	"emporia/models"
	"emporia/rdx"
	"emporia/shopapi"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// fakeUpstream counts order submissions and replies with the given status
// and body.
func fakeUpstream(t *testing.T, status int, body string, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/order/place" {
			atomic.AddInt64(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func setup(t *testing.T, upstreamURL string) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	Upstream = shopapi.New(upstreamURL)
	MinOrderValue = 500
}

func checkoutRequest(sid, token string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/checkout/place-order", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	if sid != "" {
		r = r.WithContext(context.WithValue(r.Context(), globals.SessionIDKey, sid))
	}
	return r
}

func fillCart(t *testing.T, sid string, price float64, qty int) {
	t.Helper()
	a := cart.Action{Type: cart.AddItem, Item: models.CartItem{ProductID: 1, Name: "bulk pack", Price: price}}
	if _, err := cart.Dispatch(sid, a); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	for i := 1; i < qty; i++ {
		inc := cart.Action{Type: cart.IncrementItem, Item: a.Item}
		if _, err := cart.Dispatch(sid, inc); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
}

func TestCheckoutUnauthenticatedRedirectsWithoutUpstreamCall(t *testing.T) {
	var calls int64
	srv := fakeUpstream(t, http.StatusOK, `{"status":200}`, &calls)
	defer srv.Close()
	setup(t, srv.URL)
	fillCart(t, "s1", 600, 1)

	w := httptest.NewRecorder()
	PlaceOrder(w, checkoutRequest("s1", ""), nil)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatal("no upstream request may be issued for an unauthenticated checkout")
	}
}

func TestCheckoutEmptyCartIsRejectedWithoutUpstreamCall(t *testing.T) {
	var calls int64
	srv := fakeUpstream(t, http.StatusOK, `{"status":200}`, &calls)
	defer srv.Close()
	setup(t, srv.URL)

	w := httptest.NewRecorder()
	PlaceOrder(w, checkoutRequest("s1", "tok"), nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "empty") {
		t.Fatalf("expected empty-cart message, got %s", w.Body.String())
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatal("no upstream request may be issued for an empty cart")
	}
}

func TestCheckoutBelowMinimumIsRejectedWithoutUpstreamCall(t *testing.T) {
	var calls int64
	srv := fakeUpstream(t, http.StatusOK, `{"status":200}`, &calls)
	defer srv.Close()
	setup(t, srv.URL)
	fillCart(t, "s1", 100, 2) // total 200 < 500

	w := httptest.NewRecorder()
	PlaceOrder(w, checkoutRequest("s1", "tok"), nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "500") {
		t.Fatalf("expected minimum-order message, got %s", w.Body.String())
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatal("no upstream request may be issued below the minimum order value")
	}
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	var calls int64
	srv := fakeUpstream(t, http.StatusOK, `{"status":200,"message":"Order placed"}`, &calls)
	defer srv.Close()
	setup(t, srv.URL)
	fillCart(t, "s1", 300, 2) // total 600

	w := httptest.NewRecorder()
	PlaceOrder(w, checkoutRequest("s1", "tok"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Fatalf("expected exactly one upstream order call, got %d", calls)
	}
	items, err := cart.LoadItems("s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart must be empty after a successful order, got %+v", items)
	}
}

func TestCheckoutUpstreamFailureKeepsCartAndSurfacesMessage(t *testing.T) {
	var calls int64
	srv := fakeUpstream(t, http.StatusBadRequest, `{"status":400,"message":"Insufficient stock"}`, &calls)
	defer srv.Close()
	setup(t, srv.URL)
	fillCart(t, "s1", 600, 1)

	w := httptest.NewRecorder()
	PlaceOrder(w, checkoutRequest("s1", "tok"), nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "Insufficient stock" {
		t.Fatalf("expected server-provided message, got %q", resp["error"])
	}
	items, _ := cart.LoadItems("s1")
	if len(items) != 1 {
		t.Fatalf("cart must be kept after a failed order, got %+v", items)
	}
}

func TestCheckoutSecondSubmitWhileInFlightIsRejected(t *testing.T) {
	var calls int64
	srv := fakeUpstream(t, http.StatusOK, `{"status":200}`, &calls)
	defer srv.Close()
	setup(t, srv.URL)
	fillCart(t, "s1", 600, 1)

	// simulate a first submit still in flight
	if ok, err := rdx.RdxSetNX(lockKey("s1"), "1", 30*time.Second); err != nil || !ok {
		t.Fatalf("seed lock: ok=%v err=%v", ok, err)
	}

	w := httptest.NewRecorder()
	PlaceOrder(w, checkoutRequest("s1", "tok"), nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatal("a duplicate submit must not reach the commerce API")
	}
	items, _ := cart.LoadItems("s1")
	if len(items) != 1 {
		t.Fatalf("cart must be untouched, got %+v", items)
	}
}
