package form_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igordesouzasouza/catalog-ingest/internal/form"
)

type formField struct {
	name  string
	value string
}

func multipartRequest(t *testing.T, fields []formField, fileField string, fileData []byte) (body *bytes.Buffer, contentType string) {
	t.Helper()

	body = &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f.name, f.value))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func TestDecode(t *testing.T) {
	t.Run("Should decode fixed fields", func(t *testing.T) {
		body, contentType := multipartRequest(t, []formField{
			{"name", "Dress A"},
			{"description", "desc"},
			{"price", "49.90"},
			{"stock", "3"},
			{"category", "Vestidos"},
		}, "", nil)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Equal(t, "Dress A", draft.Name)
		assert.Equal(t, "desc", draft.Description)
		assert.Equal(t, "49.90", draft.Price)
		assert.Equal(t, "3", draft.Stock)
		assert.Equal(t, "Vestidos", draft.Category)
		assert.Nil(t, draft.Image)
		assert.Empty(t, draft.Sizes)
	})

	t.Run("Should accept portuguese aliases", func(t *testing.T) {
		body, contentType := multipartRequest(t, []formField{
			{"name", "Saia"},
			{"description", "desc"},
			{"price", "20"},
			{"estoque", "7"},
			{"categoria", "Saias"},
		}, "", nil)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Equal(t, "7", draft.Stock)
		assert.Equal(t, "Saias", draft.Category)
	})

	t.Run("Should build size chart from bracketed keys", func(t *testing.T) {
		body, contentType := multipartRequest(t, []formField{
			{"name", "Dress"},
			{"sizes[PP_busto]", "80"},
			{"sizes[PP_cintura]", "60"},
			{"sizes[M_busto]", "90"},
			{"medidas[G_quadril]", "100"},
		}, "", nil)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"busto": "80", "cintura": "60"}, draft.Sizes["PP"])
		assert.Equal(t, map[string]string{"busto": "90"}, draft.Sizes["M"])
		assert.Equal(t, map[string]string{"quadril": "100"}, draft.Sizes["G"])
	})

	t.Run("Should keep measure names containing underscores", func(t *testing.T) {
		body, contentType := multipartRequest(t, []formField{
			{"sizes[M_comprimento_total]", "110"},
		}, "", nil)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"comprimento_total": "110"}, draft.Sizes["M"])
	})

	t.Run("Should ignore malformed or unknown dynamic keys", func(t *testing.T) {
		body, contentType := multipartRequest(t, []formField{
			{"sizes[PPbusto]", "80"},
			{"sizes[_busto]", "80"},
			{"sizes[PP_]", "80"},
			{"tags[PP_busto]", "80"},
			{"sizes[PP_busto", "80"},
			{"whatever", "x"},
		}, "", nil)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Empty(t, draft.Sizes)
	})

	t.Run("Should apply last write wins on duplicate keys", func(t *testing.T) {
		body, contentType := multipartRequest(t, []formField{
			{"sizes[PP_busto]", "80"},
			{"sizes[PP_busto]", "85"},
		}, "", nil)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Equal(t, "85", draft.Sizes["PP"]["busto"])
	})

	t.Run("Should capture image bytes", func(t *testing.T) {
		imageData := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
		body, contentType := multipartRequest(t, []formField{
			{"name", "Dress"},
		}, "photo", imageData)

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Equal(t, imageData, draft.Image)
	})

	t.Run("Should treat oversized image as no image", func(t *testing.T) {
		body, contentType := multipartRequest(t, nil, "foto", bytes.Repeat([]byte{0xAB}, (5<<20)+1))

		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)

		draft, err := form.Decode(req)
		require.NoError(t, err)

		assert.Nil(t, draft.Image)
	})

	t.Run("Should error on a non-multipart body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/products", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		_, err := form.Decode(req)
		assert.Error(t, err)
	})
}
