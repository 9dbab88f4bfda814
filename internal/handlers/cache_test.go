package handlers

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func TestImageCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := testCfg()
	cfg.Cache.ImageCacheEnabled = true
	cfg.Cache.ImageCacheTTL = time.Minute

	app := fiber.New()
	svc := NewRenderService(cfg, rdb)
	app.Get("/barcode", svc.HandleBarcode)

	fetch := func() []byte {
		resp, err := app.Test(httptest.NewRequest("GET", "/barcode?text=cached", nil), -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		return body
	}

	first := fetch()
	if len(mr.Keys()) != 1 {
		t.Fatalf("expected one cached entry, got %d", len(mr.Keys()))
	}

	second := fetch()
	if !bytes.Equal(first, second) {
		t.Fatalf("cache hit returned different bytes")
	}

	// headers still set on the cached path
	resp, _ := app.Test(httptest.NewRequest("GET", "/barcode?text=cached&dl=1", nil), -1)
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=barcode_code128.png" {
		t.Fatalf("unexpected disposition on cached path: %q", got)
	}
}

func TestImageCache_DisabledKeepsRedisUntouched(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := testCfg()
	cfg.Cache.ImageCacheEnabled = false

	app := fiber.New()
	svc := NewRenderService(cfg, rdb)
	app.Get("/barcode", svc.HandleBarcode)

	resp, err := app.Test(httptest.NewRequest("GET", "/barcode?text=hello", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("expected no cached entries, got %d", len(mr.Keys()))
	}
}

func TestComputeCacheKey_Distinct(t *testing.T) {
	a := computeCacheKey("barcode", "text", "png")
	b := computeCacheKey("barcode", "text", "svg")
	c := computeCacheKey("barcode", "textp", "ng")
	if a == b || a == c || b == c {
		t.Fatalf("cache keys collided: %s %s %s", a, b, c)
	}
}
