package multipart

import (
	"bytes"
	"imgopt/internal/core/domain"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formFile struct {
	field    string
	fileName string
	content  []byte
}

type formField struct {
	name  string
	value string
}

func buildForm(t *testing.T, files []formFile, fields []formField) (string, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.fileName)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}

	for _, f := range fields {
		require.NoError(t, writer.WriteField(f.name, f.value))
	}

	require.NoError(t, writer.Close())

	return writer.FormDataContentType(), buf
}

func TestDecoder_Decode(t *testing.T) {
	tests := []struct {
		name       string
		files      []formFile
		fields     []formField
		query      url.Values
		wantErr    error
		wantImage  []byte
		wantOption domain.OptionFlag
		wantParts  int
	}{
		{
			name:      "single image",
			files:     []formFile{{field: "image", fileName: "a.jpg", content: []byte("first")}},
			wantImage: []byte("first"),
			wantParts: 1,
		},
		{
			name: "first image part wins",
			files: []formFile{
				{field: "image", fileName: "a.jpg", content: []byte("first")},
				{field: "image", fileName: "b.jpg", content: []byte("second")},
			},
			wantImage: []byte("first"),
			wantParts: 2,
		},
		{
			name: "image after other parts",
			files: []formFile{
				{field: "avatar", fileName: "x.png", content: []byte("other")},
				{field: "image", fileName: "a.jpg", content: []byte("wanted")},
			},
			wantImage: []byte("wanted"),
			wantParts: 2,
		},
		{
			name:       "checkbox on",
			files:      []formFile{{field: "image", fileName: "a.jpg", content: []byte("img")}},
			fields:     []formField{{name: "checkbox", value: "on"}},
			wantImage:  []byte("img"),
			wantOption: true,
			wantParts:  2,
		},
		{
			name:       "checkbox other value",
			files:      []formFile{{field: "image", fileName: "a.jpg", content: []byte("img")}},
			fields:     []formField{{name: "checkbox", value: "yes"}},
			wantImage:  []byte("img"),
			wantOption: false,
			wantParts:  2,
		},
		{
			name:       "checkbox from query",
			files:      []formFile{{field: "image", fileName: "a.jpg", content: []byte("img")}},
			query:      url.Values{"checkbox": []string{"on"}},
			wantImage:  []byte("img"),
			wantOption: true,
			wantParts:  1,
		},
		{
			name:       "form checkbox takes precedence over query",
			files:      []formFile{{field: "image", fileName: "a.jpg", content: []byte("img")}},
			fields:     []formField{{name: "checkbox", value: "off"}},
			query:      url.Values{"checkbox": []string{"on"}},
			wantImage:  []byte("img"),
			wantOption: false,
			wantParts:  2,
		},
		{
			name:    "missing image",
			fields:  []formField{{name: "checkbox", value: "on"}},
			wantErr: domain.ErrMissingPart,
		},
		{
			name:    "empty image",
			files:   []formFile{{field: "image", fileName: "a.jpg", content: []byte{}}},
			wantErr: domain.ErrMissingPart,
		},
		{
			name:    "empty form",
			wantErr: domain.ErrMissingPart,
		},
		{
			name:    "part too large",
			files:   []formFile{{field: "image", fileName: "a.jpg", content: bytes.Repeat([]byte("x"), 2048)}},
			wantErr: domain.ErrTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			contentType, body := buildForm(t, tc.files, tc.fields)
			decoder := NewDecoder(datasize.KB)

			upload, err := decoder.Decode(contentType, body, tc.query)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, upload)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantImage, upload.Image.Content)
			assert.Equal(t, "image", upload.Image.Name)
			assert.Equal(t, tc.wantOption, upload.Option)
			assert.Len(t, upload.Parts, tc.wantParts)
		})
	}
}

func TestDecoder_DecodeNotMultipart(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "json body",
			contentType: "application/json",
			body:        `{"image":"x"}`,
		},
		{
			name:        "missing content type",
			contentType: "",
			body:        "raw",
		},
		{
			name:        "multipart without boundary",
			contentType: "multipart/form-data",
			body:        "raw",
		},
		{
			name:        "other multipart subtype",
			contentType: "multipart/mixed; boundary=abc",
			body:        "--abc--",
		},
		{
			name:        "malformed stream",
			contentType: "multipart/form-data; boundary=abc",
			body:        "this is not a multipart body",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoder := NewDecoder(datasize.MB)

			_, err := decoder.Decode(tc.contentType, strings.NewReader(tc.body), nil)
			require.ErrorIs(t, err, domain.ErrNotMultipart)
		})
	}
}

func TestDecoder_DecodeBodyLimit(t *testing.T) {
	contentType, body := buildForm(t, []formFile{
		{field: "image", fileName: "a.jpg", content: bytes.Repeat([]byte("x"), 4096)},
	}, nil)

	rec := httptest.NewRecorder()
	limited := http.MaxBytesReader(rec, io.NopCloser(body), 512)

	_, err := NewDecoder(datasize.MB).Decode(contentType, limited, nil)
	require.ErrorIs(t, err, domain.ErrTooLarge)
}

func TestDecoder_KeepsPartMetadata(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="cat.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	upload, err := NewDecoder(datasize.MB).Decode(writer.FormDataContentType(), buf, nil)
	require.NoError(t, err)

	assert.Equal(t, "cat.png", upload.Image.FileName)
	assert.Equal(t, "image/png", upload.Image.ContentType)
}
