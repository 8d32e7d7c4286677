package upload

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thelogs/shelflife/internal/errs"
)

// Minimal valid PNG header so content-type sniffing picks image/png.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newStore(t *testing.T) (*DiskStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads/")
	require.NoError(t, err)
	return s, dir
}

func TestUpload_RawBytes(t *testing.T) {
	s, dir := newStore(t)

	url, err := s.Upload(context.Background(), pngBytes, "cover")
	require.NoError(t, err)
	require.Equal(t, "/uploads/cover.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "cover.png"))
	require.NoError(t, err)
	require.Equal(t, pngBytes, data)
}

func TestUpload_DataURI(t *testing.T) {
	s, dir := newStore(t)

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	url, err := s.Upload(context.Background(), []byte(uri), "pasted")
	require.NoError(t, err)
	require.Equal(t, "/uploads/pasted.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "pasted.png"))
	require.NoError(t, err)
	require.Equal(t, pngBytes, data, "data uri is decoded before writing")
}

func TestUpload_MalformedDataURI(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Upload(context.Background(), []byte("data:image/png;base64"), "x")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpload_NonBase64DataURI(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Upload(context.Background(), []byte("data:image/png,rawpayload"), "x")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpload_BadBase64(t *testing.T) {
	s, dir := newStore(t)
	_, err := s.Upload(context.Background(), []byte("data:image/png;base64,@@@@"), "x")
	require.ErrorIs(t, err, errs.ErrValidation)

	// Nothing gets hosted on failure.
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestUpload_EmptyName(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Upload(context.Background(), pngBytes, "")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpload_NameIsBasenamed(t *testing.T) {
	s, dir := newStore(t)
	url, err := s.Upload(context.Background(), pngBytes, "../../etc/passwd")
	require.NoError(t, err)
	require.Equal(t, "/uploads/passwd.png", url)

	_, err = os.Stat(filepath.Join(dir, "passwd.png"))
	require.NoError(t, err)
}

func TestUpload_UnknownTypeGetsBinExt(t *testing.T) {
	s, _ := newStore(t)
	url, err := s.Upload(context.Background(), []byte("just some text"), "blob")
	require.NoError(t, err)
	require.Equal(t, "/uploads/blob.bin", url)
}
