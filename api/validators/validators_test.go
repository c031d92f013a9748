package validators

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

type addPayload struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,notblank"`
	Qty     int      `json:"qty" validate:"min=1"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"item_ids":["P1"],"qty":2}`))
	var payload addPayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Qty != 2 || payload.ItemIDs[0] != "P1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"item_ids":["P1"],"qty":1,"extra":true}`))
	var payload addPayload
	err := DecodeJSONBody(req, &payload)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"item_ids":[" "],"qty":0}`))
	var payload addPayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["qty"] != "must be at least 1" {
		t.Fatalf("unexpected qty message %q", details["qty"])
	}
	if details["item_ids[0]"] != "must not be blank" {
		t.Fatalf("unexpected item message %v", details)
	}
}

func TestParseQty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?qty=12", nil)
	v, err := ParseQty(req, 1, 1000)
	if err != nil || v != 12 {
		t.Fatalf("expected 12, got %d (%v)", v, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if v, _ := ParseQty(req, 3, 1000); v != 3 {
		t.Fatalf("expected default 3, got %d", v)
	}

	for _, raw := range []string{"abc", "2.5", "0", "1001"} {
		req = httptest.NewRequest(http.MethodGet, "/?qty="+raw, nil)
		if _, err := ParseQty(req, 1, 1000); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestPathID(t *testing.T) {
	id, err := PathID("  V1 ", "vendor_id")
	if err != nil || id != "V1" {
		t.Fatalf("expected V1, got %q (%v)", id, err)
	}
	if _, err := PathID(" ", "vendor_id"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
	if _, err := PathID(strings.Repeat("x", 65), "line_id"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for long id, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"item_ids":["P1"],"qty":1}{"qty":2}`))
	var payload addPayload
	if err := DecodeJSONBody(req, &payload); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsOversizedBody(t *testing.T) {
	body := `{"item_ids":["` + strings.Repeat("P", maxBodyBytes) + `"],"qty":1}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var payload addPayload
	if err := DecodeJSONBody(req, &payload); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseLines(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lines=Produce,%20Dairy%20,,Produce&lines=Meat", nil)
	got := ParseLines(req, "lines")
	want := []string{"Dairy", "Meat", "Produce"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ParseLines(req, "lines"); len(got) != 0 {
		t.Fatalf("expected no lines, got %v", got)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]string{"": FormatJSON, "json": FormatJSON, "CSV": FormatCSV}
	for raw, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?format="+raw, nil)
		got, err := ParseFormat(req)
		if err != nil || got != want {
			t.Fatalf("format %q: expected %q got %q (%v)", raw, want, got, err)
		}
	}
	req := httptest.NewRequest(http.MethodGet, "/?format=xml", nil)
	if _, err := ParseFormat(req); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
