package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
)

func TestPageCount(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{120, 50, 3},
		{10, 0, 0}, // degenerate page size
	}

	for _, tc := range cases {
		if got := pageCount(tc.total, tc.perPage); got != tc.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}

func TestJSONPageEnvelope(t *testing.T) {
	app := iris.New()
	app.Get("/", func(ctx iris.Context) {
		JSONPage(ctx, []string{"a", "b"}, 2, 50, 120)
	})
	if err := app.Build(); err != nil {
		t.Fatalf("building app: %v", err)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body struct {
		Data []string `json:"data"`
		Meta PageMeta `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Data) != 2 {
		t.Errorf("data has %d rows, want 2", len(body.Data))
	}
	want := PageMeta{Page: 2, PerPage: 50, Total: 120, Pages: 3}
	if body.Meta != want {
		t.Errorf("meta = %+v, want %+v", body.Meta, want)
	}
}
