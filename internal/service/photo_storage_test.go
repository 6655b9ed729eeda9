package service

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"research-directory/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestPhotoStorage(t *testing.T) (PhotoStorage, string) {
	t.Helper()

	dir := t.TempDir()
	log := logrus.New()
	log.SetOutput(io.Discard)

	storage, err := NewPhotoStorage(config.UploadConfig{
		Dir:         dir,
		AllowedExts: []string{"png", "jpg", "jpeg", "webp"},
	}, log)
	require.NoError(t, err)
	return storage, dir
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}

func TestPhotoStorageStoresAllowedFile(t *testing.T) {
	storage, dir := newTestPhotoStorage(t)

	name, err := storage.Store(makeFileHeader(t, "portrait.jpg", "jpeg bytes"))
	require.NoError(t, err)
	require.Equal(t, "portrait.jpg", name)

	data, err := os.ReadFile(filepath.Join(dir, "portrait.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg bytes", string(data))
}

func TestPhotoStorageExtensionCaseInsensitive(t *testing.T) {
	storage, _ := newTestPhotoStorage(t)

	name, err := storage.Store(makeFileHeader(t, "portrait.PNG", "png bytes"))
	require.NoError(t, err)
	require.Equal(t, "portrait.PNG", name)
}

func TestPhotoStorageRejectsDisallowedExtension(t *testing.T) {
	storage, dir := newTestPhotoStorage(t)

	for _, filename := range []string{"notes.txt", "script.sh", "noextension"} {
		name, err := storage.Store(makeFileHeader(t, filename, "payload"))
		require.NoError(t, err)
		require.Empty(t, name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestPhotoStorageNilFile(t *testing.T) {
	storage, _ := newTestPhotoStorage(t)

	name, err := storage.Store(nil)
	require.NoError(t, err)
	require.Empty(t, name)
}

func TestPhotoStorageSanitizesFilename(t *testing.T) {
	storage, dir := newTestPhotoStorage(t)

	name, err := storage.Store(makeFileHeader(t, "../../etc pass wd.png", "bytes"))
	require.NoError(t, err)
	require.NotContains(t, name, "/")
	require.NotContains(t, name, "..")

	// The file must land inside the upload dir under the sanitized name.
	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
}

func TestPhotoStorageCollisionOverwrites(t *testing.T) {
	storage, dir := newTestPhotoStorage(t)

	name, err := storage.Store(makeFileHeader(t, "same.webp", "first"))
	require.NoError(t, err)

	name2, err := storage.Store(makeFileHeader(t, "same.webp", "second"))
	require.NoError(t, err)
	require.Equal(t, name, name2)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../../evil.png", "evil.png"},
		{"weird$chars!.webp", "weird_chars_.webp"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
