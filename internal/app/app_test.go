package app

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	u "code2img/internal/utils"
)

func testAppConfig() u.Config {
	var cfg u.Config
	cfg.Limits.MaxTextBytes = 8192
	cfg.Render.DPI = 120
	cfg.Render.JPEGQuality = 90
	return cfg
}

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	return SetupApp(testAppConfig(), nil)
}

func decodeJSON(t *testing.T, app *fiber.App, url string, status int) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil), -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	if resp.StatusCode != status {
		t.Fatalf("GET %s: expected %d, got %d", url, status, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("GET %s: invalid JSON %q: %v", url, body, err)
	}
	return doc
}

func TestIndexDocument(t *testing.T) {
	doc := decodeJSON(t, testApp(t), "/", fiber.StatusOK)
	if doc["message"] != "Welcome to Barcode/QRCode Generator API" {
		t.Fatalf("unexpected welcome message: %v", doc["message"])
	}
	links, ok := doc["links"].(map[string]interface{})
	if !ok || links["barcode"] != "/barcode" || links["qrcode"] != "/qrcode" {
		t.Fatalf("unexpected links: %v", doc["links"])
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	doc := decodeJSON(t, testApp(t), "/does-not-exist", fiber.StatusNotFound)
	if doc["error"] != "Not Found" {
		t.Fatalf("unexpected 404 body: %v", doc)
	}
}

func TestErrorBodyShape(t *testing.T) {
	cases := map[string]string{
		"/barcode":                      "No text and type are provided",
		"/qrcode":                       "No text and type are provided",
		"/barcode?text=x&type=foo":      "Barcode type foo is not supported",
		"/barcode?text=x&format=webp":   "Output format webp is not supported",
		"/barcode?text=x&image_mode=P":  "Image mode P is not supported",
		"/qrcode?text=x&format=tiff":    "Output format tiff is not supported",
		"/qrcode?text=x&scale=101":      "QRCode scale is too large!",
	}
	app := testApp(t)
	for url, msg := range cases {
		doc := decodeJSON(t, app, url, fiber.StatusBadRequest)
		if doc["error"] != msg {
			t.Fatalf("%s: expected error %q, got %v", url, msg, doc["error"])
		}
	}
}

func TestHealthcheckRoutes(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/livez", nil), -1)
	if err != nil {
		t.Fatalf("livez failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected livez 200, got %d", resp.StatusCode)
	}
}

// Every example URL published by the capability documents must work when
// invoked against the same app.
func TestCapabilityExamples_RoundTrip(t *testing.T) {
	app := testApp(t)

	for _, route := range []string{"/barcode/types", "/qrcode/types"} {
		doc := decodeJSON(t, app, route, fiber.StatusOK)

		examples, ok := doc["examples"].([]interface{})
		if !ok || len(examples) == 0 {
			t.Fatalf("%s: missing examples", route)
		}
		for _, raw := range examples {
			example, ok := raw.(map[string]interface{})
			if !ok {
				t.Fatalf("%s: malformed example %v", route, raw)
			}
			url, _ := example["url"].(string)
			if url == "" {
				t.Fatalf("%s: example without url: %v", route, example)
			}
			resp, err := app.Test(httptest.NewRequest("GET", url, nil), -1)
			if err != nil {
				t.Fatalf("example %s failed: %v", url, err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("example %s: expected 200, got %d", url, resp.StatusCode)
			}
		}
	}
}

// The documented type and format lists must be accepted by the live routes.
func TestCapabilityLists_Accepted(t *testing.T) {
	app := testApp(t)

	doc := decodeJSON(t, app, "/qrcode/types", fiber.StatusOK)
	formats, _ := doc["formats"].([]interface{})
	if len(formats) == 0 {
		t.Fatalf("qrcode doc has no formats")
	}
	for _, f := range formats {
		url := "/qrcode?text=hello&format=" + f.(string)
		resp, err := app.Test(httptest.NewRequest("GET", url, nil), -1)
		if err != nil {
			t.Fatalf("%s failed: %v", url, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", url, resp.StatusCode)
		}
	}

	doc = decodeJSON(t, app, "/barcode/types", fiber.StatusOK)
	formats, _ = doc["formats"].([]interface{})
	for _, f := range formats {
		url := "/barcode?text=hello&format=" + f.(string)
		resp, err := app.Test(httptest.NewRequest("GET", url, nil), -1)
		if err != nil {
			t.Fatalf("%s failed: %v", url, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", url, resp.StatusCode)
		}
	}
}
