package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/api"
	"github.com/dfsentinel/sentinel-web/internal/inference"
	"github.com/dfsentinel/sentinel-web/internal/preview"
	"github.com/dfsentinel/sentinel-web/internal/scan"
	"github.com/dfsentinel/sentinel-web/internal/storage"
)

type TestServer struct {
	Server      *httptest.Server
	Backend     *httptest.Server
	App         *api.App
	Scans       *scan.Service
	OriginalDir string
}

// fakeBackend mimics the classifier service: POST /predict_video/ and
// the root status endpoint.
type fakeBackend struct {
	predictStatus int
	predictBody   interface{}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "active", "model_loaded": true})
	})
	mux.HandleFunc("/predict_video/", func(w http.ResponseWriter, r *http.Request) {
		if f.predictStatus != 0 {
			w.WriteHeader(f.predictStatus)
		}
		json.NewEncoder(w).Encode(f.predictBody)
	})
	return mux
}

func setupTestServer(t *testing.T, backend *fakeBackend) *TestServer {
	t.Helper()

	// templates resolve relative to the project root
	originalDir, _ := os.Getwd()
	if err := os.Chdir(filepath.Join(originalDir, "../..")); err != nil {
		t.Fatalf("Failed to change to project root: %v", err)
	}

	backendServer := httptest.NewServer(backend.handler())

	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	zlog := zap.NewNop()
	sampler := preview.NewSampler(3, 160, zlog)
	client := inference.NewClient(backendServer.URL, 10*time.Second, zlog)

	// short minimum delay keeps the suite fast; the gate itself has its
	// own timing tests
	scans := scan.NewService(sampler, client, store, 50*time.Millisecond, zlog)

	app := api.NewApp(scans, store, client, 10<<20, zlog)
	server := httptest.NewServer(api.NewRouter(app))

	ts := &TestServer{
		Server:      server,
		Backend:     backendServer,
		App:         app,
		Scans:       scans,
		OriginalDir: originalDir,
	}

	t.Cleanup(func() {
		server.Close()
		backendServer.Close()
		sampler.Cleanup()
		os.Chdir(originalDir)
	})

	return ts
}

func createVideoUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	return &buf, mw.FormDataContentType()
}

func uploadVideo(t *testing.T, ts *TestServer, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	body, formContentType := createVideoUpload(t, filename, contentType, content)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/scan", body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", formContentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to perform upload: %v", err)
	}
	return resp
}

type resultJSON struct {
	Status     string `json:"status"`
	Prediction *struct {
		Label      string   `json:"label"`
		Confidence float64  `json:"confidence"`
		Filename   string   `json:"filename"`
		Frames     []string `json:"frames"`
	} `json:"prediction"`
	Error string `json:"error"`
}

// waitForTerminalStatus polls result.json until the scan leaves the
// scanning state.
func waitForTerminalStatus(t *testing.T, ts *TestServer, sessionID string, timeout time.Duration) resultJSON {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.Server.URL + "/scan/" + sessionID + "/result.json")
		if err != nil {
			t.Fatalf("Failed to poll result: %v", err)
		}

		var result resultJSON
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			resp.Body.Close()
			t.Fatalf("Failed to decode result: %v", err)
		}
		resp.Body.Close()

		if result.Status == "done" || result.Status == "error" {
			return result
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("Scan %s never reached a terminal status", sessionID)
	return resultJSON{}
}
