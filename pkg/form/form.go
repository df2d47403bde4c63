// Package form encodes outbound field sets as multipart/form-data.
package form

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strconv"
	"strings"

	"github.com/diwise/map-items/pkg/model"
	"github.com/google/uuid"
)

const DefaultContentType string = "application/octet-stream"

// Encode writes fields to w as a multipart form and returns the content type,
// boundary included, to send it with. Fields with a nil value are left out.
func Encode(w io.Writer, fields model.FieldSet) (string, error) {
	mw := multipart.NewWriter(w)

	for _, f := range fields {
		if isNil(f.Value) {
			continue
		}

		var err error

		switch v := f.Value.(type) {
		case *File:
			err = writeFile(mw, f.Key, v)
		case File:
			err = writeFile(mw, f.Key, &v)
		case []byte:
			err = writeFile(mw, f.Key, &File{Content: v})
		case io.Reader:
			var file *File
			file, err = AsFile(v)
			if err == nil {
				err = writeFile(mw, f.Key, file)
			}
		default:
			var s string
			s, err = formatValue(v)
			if err == nil {
				err = mw.WriteField(f.Key, s)
			}
		}

		if err != nil {
			return "", fmt.Errorf("failed to write form field %s: %w", f.Key, err)
		}
	}

	err := mw.Close()
	if err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(mw *multipart.Writer, key string, f *File) error {
	filename := f.Filename
	if filename == "" {
		filename = uuid.NewString()
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(key), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	_, err = part.Write(f.Content)
	return err
}

func formatValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case json.Number:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
