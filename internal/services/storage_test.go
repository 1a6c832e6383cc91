package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(dir)
	require.NoError(t, svc.EnsureUploadDir())

	filename, filePath, err := svc.SaveFile(multipartFile(t, "resume.pdf", "%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "cv_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, filepath.Join(dir, filename), filePath)

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	require.NoError(t, svc.DeleteFile(filename))
	_, err = os.Stat(filePath)
	assert.True(t, os.IsNotExist(err))
}

func TestStorageRejectsNonPDF(t *testing.T) {
	svc := NewStorageService(t.TempDir())

	_, _, err := svc.SaveFile(multipartFile(t, "resume.docx", "not a pdf"))
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	in := "  Line one  \n\n\n   Line two\n\n \nLine three   "
	assert.Equal(t, "Line one\nLine two\nLine three", CleanText(in))
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := NewPDFParserService().ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
