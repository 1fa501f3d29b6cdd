package orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emporia/globals"
	"emporia/shopapi"

	"github.com/julienschmidt/httprouter"
)

// orderServer fakes the commerce API's order endpoints: filter returns one
// item with the given status, update-item-status records being called.
func orderServer(t *testing.T, currentStatus string, updated *bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/order/filter":
			w.Write([]byte(`{"orderItemList":[{"id":7,"quantity":2,"price":250,"status":"` + currentStatus + `","product":{"id":1,"name":"Bulk Pack","price":125}}]}`))
		case strings.HasPrefix(r.URL.Path, "/order/update-item-status/"):
			*updated = true
			w.Write([]byte(`{"status":200,"message":"Status updated"}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(context.WithValue(r.Context(), globals.TokenKey, "tok"))
}

func TestUpdateOrderItemStatusForwardMove(t *testing.T) {
	updated := false
	srv := orderServer(t, "CONFIRMED", &updated)
	defer srv.Close()
	Upstream = shopapi.New(srv.URL)

	w := httptest.NewRecorder()
	ps := httprouter.Params{{Key: "itemid", Value: "7"}}
	UpdateOrderItemStatus(w, authedRequest(http.MethodPut, "/api/orders/update-item-status/7?status=DELIVERING"), ps)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !updated {
		t.Fatal("expected the upstream status update to be called")
	}
}

func TestUpdateOrderItemStatusBackwardMoveRejected(t *testing.T) {
	updated := false
	srv := orderServer(t, "DELIVERED", &updated)
	defer srv.Close()
	Upstream = shopapi.New(srv.URL)

	w := httptest.NewRecorder()
	ps := httprouter.Params{{Key: "itemid", Value: "7"}}
	UpdateOrderItemStatus(w, authedRequest(http.MethodPut, "/api/orders/update-item-status/7?status=PENDING"), ps)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if updated {
		t.Fatal("a backward move must never reach the commerce API")
	}
}

func TestUpdateOrderItemStatusUnknownStatus(t *testing.T) {
	updated := false
	srv := orderServer(t, "PENDING", &updated)
	defer srv.Close()
	Upstream = shopapi.New(srv.URL)

	w := httptest.NewRecorder()
	ps := httprouter.Params{{Key: "itemid", Value: "7"}}
	UpdateOrderItemStatus(w, authedRequest(http.MethodPut, "/api/orders/update-item-status/7?status=TELEPORTED"), ps)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if updated {
		t.Fatal("an unknown status must never reach the commerce API")
	}
}

func TestFilterOrdersPassthrough(t *testing.T) {
	updated := false
	srv := orderServer(t, "PENDING", &updated)
	defer srv.Close()
	Upstream = shopapi.New(srv.URL)

	w := httptest.NewRecorder()
	FilterOrders(w, authedRequest(http.MethodGet, "/api/orders/filter?status=PENDING"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"orderItemList"`) {
		t.Fatalf("expected orderItemList, got %s", w.Body.String())
	}
}

func TestPrintReceiptProducesPDF(t *testing.T) {
	updated := false
	srv := orderServer(t, "DELIVERED", &updated)
	defer srv.Close()
	Upstream = shopapi.New(srv.URL)

	w := httptest.NewRecorder()
	ps := httprouter.Params{{Key: "itemid", Value: "7"}}
	PrintReceipt(w, authedRequest(http.MethodGet, "/api/orders/7/receipt"), ps)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected a PDF response, got %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected a non-empty PDF body")
	}
}
