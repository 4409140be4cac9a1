// Package form decodes the admin form's multipart submission into a draft
// product. It knows the field-name contract (including the Portuguese
// aliases the older form variant sends) and the bracketed size-key grammar;
// it does not judge the values, that is the service's job.
package form

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/igordesouzasouza/catalog-ingest/internal/model"
)

const (
	// maxImageBytes mirrors the 5 MiB ceiling the form UI enforces. A larger
	// file slipping past the UI is treated as "no image", not as an error.
	maxImageBytes = 5 << 20

	// maxMemoryBytes is handed to ParseMultipartForm; larger bodies spill to
	// temp files.
	maxMemoryBytes = 32 << 20
)

// dynamicPrefixes is the allow-list for bracketed field names. Both form
// variants feed the same size chart.
var dynamicPrefixes = map[string]struct{}{
	"sizes":   {},
	"medidas": {},
}

// Decode parses the multipart body of r into a DraftProduct. Absent fields
// yield zero values; unrecognized fields are dropped. The only error is an
// unparseable body.
func Decode(r *http.Request) (model.DraftProduct, error) {
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		return model.DraftProduct{}, fmt.Errorf("parse multipart form: %w", err)
	}

	mf := r.MultipartForm
	draft := model.DraftProduct{
		Name:        fieldValue(mf, "name"),
		Description: fieldValue(mf, "description"),
		Price:       fieldValue(mf, "price"),
		Stock:       fieldValue(mf, "stock", "estoque"),
		Category:    fieldValue(mf, "category", "categoria"),
		Sizes:       decodeSizeChart(mf.Value),
		Image:       imageBytes(mf, "photo", "foto"),
	}

	return draft, nil
}

// fieldValue returns the last submitted value for the first name that was
// present at all.
func fieldValue(mf *multipart.Form, names ...string) string {
	for _, name := range names {
		if values := mf.Value[name]; len(values) > 0 {
			return values[len(values)-1]
		}
	}
	return ""
}

// decodeSizeChart folds every field matching the declared dynamic-key schema
// into a size chart. Duplicate (size, measure) pairs resolve last write wins;
// anything malformed is ignored.
func decodeSizeChart(values map[string][]string) model.SizeChart {
	chart := model.SizeChart{}
	for key, fieldValues := range values {
		size, measure, ok := parseDynamicKey(key)
		if !ok || len(fieldValues) == 0 {
			continue
		}
		if chart[size] == nil {
			chart[size] = map[string]string{}
		}
		chart[size][measure] = fieldValues[len(fieldValues)-1]
	}
	return chart
}

// parseDynamicKey validates a field name against the `prefix[SIZE_MEASURE]`
// grammar: an allow-listed prefix, brackets, and a two-part key split on the
// first underscore.
func parseDynamicKey(key string) (size, measure string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	if _, allowed := dynamicPrefixes[key[:open]]; !allowed {
		return "", "", false
	}

	inner := key[open+1 : len(key)-1]
	size, measure, found := strings.Cut(inner, "_")
	if !found || size == "" || measure == "" {
		return "", "", false
	}
	return size, measure, true
}

// imageBytes reads the attached image, if any. An unreadable or oversized
// file degrades to no image; the submission itself stays valid.
func imageBytes(mf *multipart.Form, names ...string) []byte {
	var header *multipart.FileHeader
	for _, name := range names {
		if headers := mf.File[name]; len(headers) > 0 {
			header = headers[0]
			break
		}
	}
	if header == nil || header.Size == 0 || header.Size > maxImageBytes {
		return nil
	}

	file, err := header.Open()
	if err != nil {
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil || len(data) > maxImageBytes {
		return nil
	}
	return data
}
