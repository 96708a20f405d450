package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil, "application/json")
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload, "application/json")
}

func (t *TestContext) iUploadWithContent(fileName, contentType, path string, content *godog.DocString) error {
	return t.upload(path, fileName, contentType, []byte(content.Content))
}

func (t *TestContext) iUploadAnEmptyFile(fileName, contentType, path string) error {
	return t.upload(path, fileName, contentType, nil)
}

func (t *TestContext) iUploadBytes(size int, contentType, path string) error {
	return t.upload(path, "large.bin", contentType, bytes.Repeat([]byte("a"), size))
}

func (t *TestContext) iSendAMultipartRequestWithoutAFile(path string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("note", "no file attached"); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return t.executeRequest(http.MethodPost, path, buf.Bytes(), writer.FormDataContentType())
}

func (t *TestContext) upload(path, fileName, contentType string, content []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	partHeader.Set("Content-Type", contentType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.executeRequest(http.MethodPost, path, buf.Bytes(), writer.FormDataContentType())
}

func (t *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	return content
}

func (t *TestContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentType)
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: raw}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = decoded

	// Capture the transaction id from single-transaction responses
	if obj, ok := decoded.(map[string]any); ok {
		for _, field := range []string{"id", "transaction.id"} {
			if idStr, ok := getFieldValue(obj, field).(string); ok {
				if id, err := uuid.Parse(idStr); err == nil {
					t.lastTransactionID = id
					break
				}
			}
		}
	}

	return nil
}
