package lmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// request describes an outgoing API call.
type request struct {
	method string
	path   string // relative to the base URL
	query  url.Values
	body   interface{} // JSON encoded, unless it is a *multipartBody
}

// multipartBody is a multipart/form-data body: simple fields and one file part.
type multipartBody struct {
	fields    map[string]string
	fileField string
	fileName  string
	file      io.Reader
}

func (m *multipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if m.file != nil {
		part, err := w.CreateFormFile(m.fileField, m.fileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, m.file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func encodeBody(body interface{}) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *multipartBody:
		return v.encode()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func (c *Client) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	body, contentType, err := encodeBody(req.body)
	if err != nil {
		return nil, errors.Wrap(err, "encoding body")
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", c.requestID())
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if tok := c.sessions.Token(); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}
	return httpReq, nil
}

// send performs req and returns the response body.
// Any 401, except from the login call, signs the user out before the error is returned.
func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: "reading response: " + err.Error()}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newError(resp.StatusCode, body)
		if resp.StatusCode == http.StatusUnauthorized && !isLoginRequest(req) {
			c.signOut(req)
		}
		return nil, apiErr
	}
	return body, nil
}

// decodeField decodes the top-level field name of a JSON object body into v.
func decodeField(body []byte, name string, v interface{}) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	raw, ok := env[name]
	if !ok {
		return errors.Errorf("response has no %q field", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decoding %q", name)
	}
	return nil
}

// call sends req and decodes the field name of the response into out (skipped when out is nil).
func (c *Client) call(ctx context.Context, req request, name string, out interface{}) error {
	body, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if name == "" {
		return errors.Wrap(json.Unmarshal(body, out), "decoding response")
	}
	return decodeField(body, name, out)
}
