package lmsapi

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// Upload is a file sent to the upload endpoint.
type Upload struct {
	FileName   string
	Content    io.Reader
	FolderPath string // optional
}

// UploadFile sends the file as multipart form data and returns its URL. It invalidates nothing.
func (c *Client) UploadFile(ctx context.Context, up Upload) (string, error) {
	if up.Content == nil || up.FileName == "" {
		return "", errors.New("upload: no file provided")
	}
	body := &multipartBody{fileField: "file", fileName: up.FileName, file: up.Content}
	if up.FolderPath != "" {
		body.fields = map[string]string{"folderPath": up.FolderPath}
	}

	var u string
	err := c.call(ctx, request{method: "POST", path: "/upload", body: body}, "url", &u)
	return u, err
}
