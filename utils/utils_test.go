package utils

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Organic, TEA , organic,,herbal ")
	want := []string{"organic", "tea", "herbal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := SplitTags(""); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if BearerToken(r) != "" {
		t.Fatal("expected empty token without a header")
	}

	r.Header.Set("Authorization", "Bearer abc123")
	if BearerToken(r) != "abc123" {
		t.Fatalf("expected abc123, got %q", BearerToken(r))
	}

	r.Header.Set("Authorization", "Basic abc123")
	if BearerToken(r) != "" {
		t.Fatal("expected empty token for a non-bearer header")
	}
}
