// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type imagePart struct {
	filename    string
	contentType string
	data        []byte
}

func multipartChat(t *testing.T, message string, image *imagePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	require.NoError(t, mw.WriteField(formFieldMessage, message))
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+image.filename+`"`)
		if image.contentType != "" {
			header.Set("Content-Type", image.contentType)
		}
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(image.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func chatRequest(body *bytes.Buffer, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/new", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(sessionHeader, testToken)
	return req
}

// recordingChat captures what the handler passes to the dispatcher.
func recordingChat(reply models.Reply, err error) (*fakeChatService, *struct {
	called     bool
	text       string
	attachment *models.Attachment
}) {
	seen := &struct {
		called     bool
		text       string
		attachment *models.Attachment
	}{}
	return &fakeChatService{
		handleFn: func(_ context.Context, identity models.Identity, text string, attachment *models.Attachment) (models.Reply, error) {
			seen.called = true
			seen.text = text
			seen.attachment = attachment
			return reply, err
		},
	}, seen
}

// ─────────────────────────────────────────────
// chat/new
// ─────────────────────────────────────────────

func TestNewChat_JSONText(t *testing.T) {
	reply := models.Reply{
		AssistantResponse: "see recursion",
		RunID:             "run-1",
		Chats: []models.RoleMessage{
			{Role: models.RoleUser, Content: "what is recursion?"},
			{Role: models.RoleAssistant, Content: "see recursion"},
		},
	}
	chat, seen := recordingChat(reply, nil)
	svcs := newTestServices()
	svcs.ChatService = chat

	rec := serve(t, newHandler(svcs), chatRequest(bytes.NewBufferString(`{"message":"what is recursion?"}`), "application/json"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "what is recursion?", seen.text)
	assert.Nil(t, seen.attachment)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "see recursion", got["assistantResponse"])
	assert.Equal(t, "run-1", got["runId"])
	assert.Len(t, got["chats"], 2)
}

func TestNewChat_MultipartWithImage(t *testing.T) {
	chat, seen := recordingChat(models.Reply{AssistantResponse: "a cat"}, nil)
	svcs := newTestServices()
	svcs.ChatService = chat

	body, ct := multipartChat(t, "what is this?", &imagePart{filename: "cat.png", contentType: "image/png", data: pngHeader})
	rec := serve(t, newHandler(svcs), chatRequest(body, ct))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen.attachment)
	assert.Equal(t, "what is this?", seen.text)
	assert.Equal(t, "cat.png", seen.attachment.Filename)
	assert.Equal(t, "image/png", seen.attachment.ContentType)
	assert.Equal(t, pngHeader, seen.attachment.Data)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotContains(t, got, "runId")
}

func TestNewChat_MultipartImageWithoutMessage(t *testing.T) {
	chat, seen := recordingChat(models.Reply{AssistantResponse: "a cat"}, nil)
	svcs := newTestServices()
	svcs.ChatService = chat

	body, ct := multipartChat(t, "", &imagePart{filename: "cat.png", data: pngHeader})
	rec := serve(t, newHandler(svcs), chatRequest(body, ct))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen.attachment)
	assert.Equal(t, "image/png", seen.attachment.ContentType, "type is sniffed when the part has none")
}

func TestNewChat_MultipartTextOnly(t *testing.T) {
	chat, seen := recordingChat(models.Reply{AssistantResponse: "ok"}, nil)
	svcs := newTestServices()
	svcs.ChatService = chat

	body, ct := multipartChat(t, "hello", nil)
	rec := serve(t, newHandler(svcs), chatRequest(body, ct))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen.attachment)
}

func TestNewChat_Rejected(t *testing.T) {
	tooBig := bytes.Repeat([]byte{0xff}, 2048)

	tests := []struct {
		name       string
		build      func(t *testing.T) (*bytes.Buffer, string)
		wantStatus int
	}{
		{
			name: "empty message without image",
			build: func(*testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"message":"  "}`), "application/json"
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed JSON",
			build: func(*testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"message":`), "application/json"
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "non-image attachment",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartChat(t, "read this", &imagePart{filename: "a.txt", contentType: "text/plain", data: []byte("hello")})
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "image over the limit",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartChat(t, "big", &imagePart{filename: "big.png", contentType: "image/png", data: tooBig})
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unsupported content type",
			build: func(*testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString("message=hi"), "application/x-www-form-urlencoded"
			},
			wantStatus: http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat, seen := recordingChat(models.Reply{}, nil)
			svcs := newTestServices()
			svcs.ChatService = chat

			body, ct := tt.build(t)
			rec := serve(t, newHandler(svcs, WithMaxAttachmentBytes(1024)), chatRequest(body, ct))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, seen.called, "dispatcher must not run for rejected input")
		})
	}
}

func TestNewChat_BodyFarOverLimit(t *testing.T) {
	chat, seen := recordingChat(models.Reply{}, nil)
	svcs := newTestServices()
	svcs.ChatService = chat

	huge := bytes.Repeat([]byte{0xff}, 2*formOverheadBytes)
	body, ct := multipartChat(t, "big", &imagePart{filename: "big.png", contentType: "image/png", data: huge})
	rec := serve(t, newHandler(svcs, WithMaxAttachmentBytes(1024)), chatRequest(body, ct))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, seen.called)
}

func TestNewChat_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{"agent", service.ErrUpstreamAgent, "the assistant is unavailable, please try again later"},
		{"vision", service.ErrUpstreamLLM, "image analysis failed, please try again later"},
		{"store", service.ErrPersistence, http.StatusText(http.StatusInternalServerError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat, _ := recordingChat(models.Reply{}, tt.err)
			svcs := newTestServices()
			svcs.ChatService = chat

			rec := serve(t, newHandler(svcs), chatRequest(bytes.NewBufferString(`{"message":"hi"}`), "application/json"))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeErrorMessage(t, rec))
		})
	}
}

func TestNewChat_RequiresSession(t *testing.T) {
	chat, seen := recordingChat(models.Reply{}, nil)
	svcs := newTestServices()
	svcs.ChatService = chat

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/new", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, newHandler(svcs), req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, seen.called)
}

// ─────────────────────────────────────────────
// chat/all-chats and chat/delete
// ─────────────────────────────────────────────

func TestAllChats(t *testing.T) {
	svcs := newTestServices()
	svcs.ChatService = &fakeChatService{
		listFn: func(_ context.Context, identity models.Identity) ([]models.RoleMessage, error) {
			assert.Equal(t, testToken, identity.SessionToken)
			return []models.RoleMessage{{Role: models.RoleUser, Content: "q"}, {Role: models.RoleAssistant, Content: "a"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/all-chats", nil)
	req.Header.Set(sessionHeader, testToken)
	rec := serve(t, newHandler(svcs), req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ChatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Message)
	assert.Equal(t, models.RoleUser, resp.Chats[0].Role)
	assert.Equal(t, "a", resp.Chats[1].Content)
}

func TestAllChats_EmptyIsArray(t *testing.T) {
	svcs := newTestServices()
	svcs.ChatService = &fakeChatService{
		listFn: func(context.Context, models.Identity) ([]models.RoleMessage, error) {
			return []models.RoleMessage{}, nil
		},
	}

	rec := httptest.NewRecorder()
	newHandler(svcs).allChats(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"OK","chats":[]}`, rec.Body.String())
}

func TestDeleteChats(t *testing.T) {
	cleared := 0
	svcs := newTestServices()
	svcs.ChatService = &fakeChatService{
		clearFn: func(context.Context, models.Identity) error {
			cleared++
			return nil
		},
	}
	h := newHandler(svcs)

	for range 2 {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/delete", nil)
		req.Header.Set(sessionHeader, testToken)
		rec := serve(t, h, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())
	}
	assert.Equal(t, 2, cleared)
}
