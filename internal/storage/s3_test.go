package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		hint        string
		wantPrefix  string
		wantExt     string
	}{
		{"image goes under images", "image/jpeg", "photo.jpg", "applicants/images/photo-", ".jpg"},
		{"pdf goes under documents", "application/pdf", "passport.pdf", "applicants/documents/passport-", ".pdf"},
		{"nested hint keeps basename only", "application/pdf", "tmp/uploads/cv.pdf", "applicants/documents/cv-", ".pdf"},
		{"empty hint gets placeholder", "application/octet-stream", "", "applicants/documents/file-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey(tt.contentType, tt.hint)
			assert.True(t, strings.HasPrefix(key, tt.wantPrefix), "key %q should start with %q", key, tt.wantPrefix)
			assert.True(t, strings.HasSuffix(key, tt.wantExt), "key %q should end with %q", key, tt.wantExt)
		})
	}
}

func TestObjectKey_Unique(t *testing.T) {
	a := ObjectKey("image/png", "same.png")
	b := ObjectKey("image/png", "same.png")
	assert.NotEqual(t, a, b)
}

func TestKeyFromURL(t *testing.T) {
	assert.Equal(t,
		"applicants/images/a.jpg",
		keyFromURL("https://bucket.s3.eu-west-1.amazonaws.com/applicants/images/a.jpg"))
	assert.Equal(t, "", keyFromURL("://bad"))
}
