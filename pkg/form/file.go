package form

import (
	"encoding/base64"
	"fmt"
	"io"
)

// File is a binary attachment sent as a file part of a multipart form.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// AsFile converts an attachment as found in an input payload into a File.
// Besides File values it accepts raw bytes, readers and JSON objects on the
// form {"filename": "", "contentType": "", "content": "<base64>"}.
// A nil value is not an error and returns a nil File.
func AsFile(value any) (*File, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *File:
		return v, nil
	case File:
		return &v, nil
	case []byte:
		return &File{Content: v}, nil
	case io.Reader:
		content, err := io.ReadAll(v)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment: %w", err)
		}
		return &File{Content: content}, nil
	case map[string]any:
		return fileFromObject(v)
	default:
		return nil, fmt.Errorf("unable to use value of type %T as an attachment", value)
	}
}

func fileFromObject(obj map[string]any) (*File, error) {
	f := &File{}

	f.Filename, _ = obj["filename"].(string)
	f.ContentType, _ = obj["contentType"].(string)

	encoded, ok := obj["content"].(string)
	if !ok {
		return nil, fmt.Errorf("attachment object without base64 encoded content")
	}

	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment content: %w", err)
	}

	f.Content = content

	return f, nil
}
