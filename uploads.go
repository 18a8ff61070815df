package blogsphere

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/firatdemir47/blogsphere-web/api"
)

const (
	maxUploadBytes = 5 << 20 // 5MB per file
	maxImageWidth  = 1600
	jpegQuality    = 85
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// handleUpload validates a batch of images and forwards them to the
// backend. Validation is all or nothing: one bad file rejects the whole
// batch and nothing is sent.
func (a *App) handleUpload(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Log in to upload files."})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No files in the request."})
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No files in the request."})
	}

	files := make([]api.UploadFile, 0, len(headers))
	for _, h := range headers {
		src, err := h.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read " + h.Filename + "."})
		}
		// Read one byte past the limit so oversize files are caught
		// without buffering arbitrarily large bodies.
		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read " + h.Filename + "."})
		}
		files = append(files, api.UploadFile{Name: h.Filename, Data: data})
	}

	if err := checkUploadBatch(files, a.Config.MaxUploadFiles); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	for i := range files {
		files[i] = downscale(files[i])
	}

	ctx := c.Request().Context()
	var urls []string
	if len(files) == 1 {
		url, err := a.API.UploadBlogImage(ctx, s.Token, files[0])
		if err != nil {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": userMessage(err)})
		}
		urls = []string{url}
	} else {
		urls, err = a.API.UploadImages(ctx, s.Token, files)
		if err != nil {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": userMessage(err)})
		}
	}
	return c.JSON(http.StatusOK, map[string][]string{"urls": urls})
}

// handleProfileAvatar replaces the user's avatar. One file, same gate
// as the batch endpoint, result surfaced on the profile page.
func (a *App) handleProfileAvatar(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	header, err := c.FormFile("avatar")
	if err != nil {
		return redirectError(c, "/profile/", "Choose an image to upload.")
	}
	src, err := header.Open()
	if err != nil {
		return redirectError(c, "/profile/", "Could not read "+header.Filename+".")
	}
	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	src.Close()
	if err != nil {
		return redirectError(c, "/profile/", "Could not read "+header.Filename+".")
	}

	file := api.UploadFile{Name: header.Filename, Data: data}
	if err := checkUploadBatch([]api.UploadFile{file}, 1); err != nil {
		return redirectError(c, "/profile/", err.Error())
	}
	file = downscale(file)

	if _, err := a.API.UploadAvatar(c.Request().Context(), s.Token, file); err != nil {
		return redirectError(c, "/profile/", userMessage(err))
	}
	return redirectFlash(c, "/profile/", "Avatar updated.")
}

// checkUploadBatch applies the upload rules to the whole batch. Each
// failure mode has its own message naming the offending file.
func checkUploadBatch(files []api.UploadFile, maxFiles int) error {
	if len(files) > maxFiles {
		return fmt.Errorf("you can upload at most %d files at once", maxFiles)
	}
	for _, f := range files {
		if len(f.Data) > maxUploadBytes {
			return fmt.Errorf("%s is larger than 5 MB", f.Name)
		}
		if !allowedImageTypes[detectImageType(f.Data)] {
			return fmt.Errorf("%s is not a supported image type (JPEG, PNG, GIF or WebP)", f.Name)
		}
	}
	return nil
}

// detectImageType sniffs the content type from the file's first bytes.
// The filename extension is never trusted.
func detectImageType(data []byte) string {
	return http.DetectContentType(data)
}

// downscale resizes JPEG and PNG images wider than maxImageWidth before
// upload. GIF and WebP pass through untouched, as does anything that
// fails to decode; the gate already guaranteed the type is acceptable.
func downscale(f api.UploadFile) api.UploadFile {
	kind := detectImageType(f.Data)
	if kind != "image/jpeg" && kind != "image/png" {
		return f
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return f
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageWidth {
		return f
	}

	newH := h * maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if kind == "image/png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return f
	}
	return api.UploadFile{Name: f.Name, Data: buf.Bytes()}
}
