package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/middleware"
	"mentorbooking/pkg/model"
)

type uploadFunc func(ctx context.Context, filename string, r io.Reader, requestedBy string) (*model.MentorImport, error)

func (f uploadFunc) Upload(ctx context.Context, filename string, r io.Reader, requestedBy string) (*model.MentorImport, error) {
	return f(ctx, filename, r, requestedBy)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func serve(t *testing.T, svc uploadFunc, claims *middleware.Claims, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	router := httprouter.New()
	NewImportHandler(svc, logger.NewNop()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, ImportMentorsPath, body)
	req.Header.Set("Content-Type", contentType)
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var admin = &middleware.Claims{Email: "ops@x.com", Role: middleware.RoleAdmin}

func TestImportMentors(t *testing.T) {
	var gotName, gotContent, gotBy string
	svc := uploadFunc(func(ctx context.Context, filename string, r io.Reader, requestedBy string) (*model.MentorImport, error) {
		data, _ := io.ReadAll(r)
		gotName, gotContent, gotBy = filename, string(data), requestedBy
		return &model.MentorImport{Bucket: "mentor_imports", Key: "imports/1/" + filename}, nil
	})

	body, contentType := multipartBody(t, "file", "mentors.csv", "email;experience;name;skills\n")
	rec := serve(t, svc, admin, body, contentType)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "mentors.csv", gotName)
	assert.True(t, strings.HasPrefix(gotContent, "email;"))
	assert.Equal(t, "ops@x.com", gotBy)

	var resp struct {
		Data importResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mentor_imports", resp.Data.Bucket)
	assert.Equal(t, "imports/1/mentors.csv", resp.Data.Key)
}

func TestImportMentors_Rejections(t *testing.T) {
	svc := uploadFunc(func(ctx context.Context, filename string, r io.Reader, requestedBy string) (*model.MentorImport, error) {
		t.Fatal("upload must not be called")
		return nil, nil
	})
	student := &middleware.Claims{Email: "a@x.com", Role: middleware.RoleStudent}

	t.Run("student", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "mentors.csv", "x")
		assert.Equal(t, http.StatusForbidden, serve(t, svc, student, body, contentType).Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := serve(t, svc, admin, strings.NewReader(`{"file":"x"}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong field", func(t *testing.T) {
		body, contentType := multipartBody(t, "upload", "mentors.csv", "x")
		assert.Equal(t, http.StatusBadRequest, serve(t, svc, admin, body, contentType).Code)
	})
}
