package blogsphere

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCheckUploadBatchAcceptsValidImages(t *testing.T) {
	files := []api.UploadFile{
		{Name: "a.png", Data: pngBytes(t, 10, 10)},
		{Name: "b.png", Data: pngBytes(t, 20, 20)},
	}
	if err := checkUploadBatch(files, 5); err != nil {
		t.Errorf("valid batch rejected: %v", err)
	}
}

func TestCheckUploadBatchRejectsTooManyFiles(t *testing.T) {
	files := make([]api.UploadFile, 6)
	for i := range files {
		files[i] = api.UploadFile{Name: "f.png", Data: pngBytes(t, 4, 4)}
	}
	err := checkUploadBatch(files, 5)
	if err == nil {
		t.Fatal("oversized batch accepted")
	}
	if !strings.Contains(err.Error(), "at most 5 files") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCheckUploadBatchRejectsOversizeFile(t *testing.T) {
	files := []api.UploadFile{
		{Name: "huge.png", Data: make([]byte, maxUploadBytes+1)},
	}
	err := checkUploadBatch(files, 5)
	if err == nil {
		t.Fatal("oversize file accepted")
	}
	if !strings.Contains(err.Error(), "huge.png") || !strings.Contains(err.Error(), "5 MB") {
		t.Errorf("message should name the file and the limit: %v", err)
	}
}

func TestCheckUploadBatchRejectsWrongType(t *testing.T) {
	files := []api.UploadFile{
		{Name: "notes.txt", Data: []byte("just some text, not an image")},
	}
	err := checkUploadBatch(files, 5)
	if err == nil {
		t.Fatal("non-image accepted")
	}
	if !strings.Contains(err.Error(), "notes.txt") || !strings.Contains(err.Error(), "not a supported image type") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCheckUploadBatchRejectsWholeBatchOnOneBadFile(t *testing.T) {
	files := []api.UploadFile{
		{Name: "good.png", Data: pngBytes(t, 10, 10)},
		{Name: "bad.txt", Data: []byte("nope")},
	}
	if err := checkUploadBatch(files, 5); err == nil {
		t.Fatal("batch with one bad file accepted")
	}
}

func TestDownscaleShrinksWideImages(t *testing.T) {
	wide := api.UploadFile{Name: "wide.png", Data: pngBytes(t, 2000, 100)}
	out := downscale(wide)

	img, _, err := image.Decode(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("decode downscaled image: %v", err)
	}
	if got := img.Bounds().Dx(); got != maxImageWidth {
		t.Errorf("width after downscale = %d, want %d", got, maxImageWidth)
	}
	if got := img.Bounds().Dy(); got != 80 {
		t.Errorf("height after downscale = %d, want 80", got)
	}
}

func TestDownscaleLeavesSmallImagesAlone(t *testing.T) {
	small := api.UploadFile{Name: "small.png", Data: pngBytes(t, 640, 480)}
	out := downscale(small)
	if !bytes.Equal(out.Data, small.Data) {
		t.Error("small image was rewritten")
	}
}

func TestDownscalePassesThroughUndecodableData(t *testing.T) {
	// The gate only guarantees the sniffed type; decode failures must
	// not lose the upload.
	junk := api.UploadFile{Name: "j.png", Data: append([]byte("\x89PNG\r\n\x1a\n"), []byte("truncated")...)}
	out := downscale(junk)
	if !bytes.Equal(out.Data, junk.Data) {
		t.Error("undecodable data was altered")
	}
}

// avatarRequest builds an authenticated multipart POST to
// /profile/avatar/ carrying one file in the avatar field.
func avatarRequest(t *testing.T, a *App, name string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("avatar", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/profile/avatar/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	c.Set(sessionContextKey, Session{SID: "s1", Token: "tok", User: api.User{ID: 1, Username: "ada"}})
	return c, rec
}

func TestProfileAvatarRejectsNonImage(t *testing.T) {
	a := toggleTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend should not be called for a rejected avatar, got %s %s", r.Method, r.URL.Path)
	})

	c, rec := avatarRequest(t, a, "notes.txt", []byte("plain text, not an image"))
	if err := a.handleProfileAvatar(c); err != nil {
		t.Fatalf("handler returned error instead of redirecting: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/profile/?error=") || !strings.Contains(loc, "not+a+supported") {
		t.Errorf("redirect should name the rejection, got %q", loc)
	}
}

func TestProfileAvatarUploadsAndRedirects(t *testing.T) {
	var gotPath string
	a := toggleTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"avatarUrl":"/static/avatars/1.png"}}`))
	})

	c, rec := avatarRequest(t, a, "me.png", pngBytes(t, 10, 10))
	if err := a.handleProfileAvatar(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if !strings.HasSuffix(gotPath, "/uploads/avatar") {
		t.Errorf("upload hit %q, want the avatar endpoint", gotPath)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/profile/?flash=") {
		t.Errorf("success should land back on the profile with a flash, got %q", loc)
	}
}
