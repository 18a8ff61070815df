package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadFile is one in-memory file to send: the already-validated bytes
// plus the original filename the backend stores.
type UploadFile struct {
	Name string
	Data []byte
}

// uploadData covers the three upload response shapes.
type uploadData struct {
	ImageURL  string   `json:"imageUrl"`
	AvatarURL string   `json:"avatarUrl"`
	ImageURLs []string `json:"imageUrls"`
}

// UploadBlogImage sends one blog image and returns its public URL.
func (c *Client) UploadBlogImage(ctx context.Context, token string, file UploadFile) (string, error) {
	data, err := c.upload(ctx, token, c.Endpoints.Uploads+"/blog-image", "image", []UploadFile{file})
	if err != nil {
		return "", err
	}
	return data.ImageURL, nil
}

// UploadAvatar sends the user's avatar image and returns its public URL.
func (c *Client) UploadAvatar(ctx context.Context, token string, file UploadFile) (string, error) {
	data, err := c.upload(ctx, token, c.Endpoints.Uploads+"/avatar", "avatar", []UploadFile{file})
	if err != nil {
		return "", err
	}
	return data.AvatarURL, nil
}

// UploadImages sends a batch of blog images in one multipart request and
// returns their public URLs.
func (c *Client) UploadImages(ctx context.Context, token string, files []UploadFile) ([]string, error) {
	data, err := c.upload(ctx, token, c.Endpoints.Uploads+"/multiple-images", "images", files)
	if err != nil {
		return nil, err
	}
	return data.ImageURLs, nil
}

func (c *Client) upload(ctx context.Context, token, url, field string, files []UploadFile) (uploadData, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return uploadData{}, fmt.Errorf("api: build multipart: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return uploadData{}, fmt.Errorf("api: build multipart: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return uploadData{}, fmt.Errorf("api: build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return uploadData{}, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return uploadData{}, fmt.Errorf("api: upload: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return uploadData{}, fmt.Errorf("api: read response: %w", err)
	}
	var env envelope
	_ = json.Unmarshal(raw, &env)
	if resp.StatusCode >= 300 {
		return uploadData{}, &Error{StatusCode: resp.StatusCode, Message: env.errorMessage()}
	}
	var data uploadData
	if err := decodeData(&env, &data); err != nil {
		return uploadData{}, err
	}
	return data, nil
}
