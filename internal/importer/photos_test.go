package importer

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBase64 returns a tiny valid payload encoded the way parsed vCards carry
// photos.
func pngBase64(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake-image-bytes"))
}

func photoContact(t *testing.T) EditedContact {
	t.Helper()
	return EditedContact{
		FirstName: "Ana",
		LastName:  "Lee",
		Email:     "ana@example.com",
		Photo:     pngBase64(t),
	}
}

func TestPhotoProvisioner_StoresPhoto(t *testing.T) {
	users := newFakeUserStore()
	assets := newFakeAssetStore()
	root := t.TempDir()
	p := NewPhotoProvisioner(users, assets, root, "/media")

	outcomes := p.Provision(1, photoContact(t))

	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeStored, outcomes[0].Kind)

	written, err := os.ReadFile(filepath.Join(root, "Ana-Lee.png"))
	require.NoError(t, err)
	decoded, _ := base64.StdEncoding.DecodeString(pngBase64(t))
	assert.Equal(t, decoded, written)

	require.Len(t, assets.registered, 1)
	assert.Equal(t, "/media/Ana-Lee.png", assets.registered[0])
	assert.Equal(t, []uint{1}, assets.sized)

	_, hasChecksum := users.GetMeta(1, "avatar_checksum")
	assert.True(t, hasChecksum)
	_, hasAsset := users.GetMeta(1, "avatar_asset")
	assert.True(t, hasAsset)
}

func TestPhotoProvisioner_SecondIdenticalCallIsNoop(t *testing.T) {
	users := newFakeUserStore()
	assets := newFakeAssetStore()
	root := t.TempDir()
	p := NewPhotoProvisioner(users, assets, root, "/media")

	first := p.Provision(1, photoContact(t))
	require.Equal(t, OutcomeStored, first[len(first)-1].Kind)

	target := filepath.Join(root, "Ana-Lee.png")
	before, err := os.Stat(target)
	require.NoError(t, err)

	second := p.Provision(1, photoContact(t))
	require.Len(t, second, 1)
	assert.Equal(t, OutcomeUnchanged, second[0].Kind)

	// Exactly one filesystem write: the file was not touched again.
	after, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Len(t, assets.registered, 1)
}

func TestPhotoProvisioner_ChangedContentReplacesPriorAsset(t *testing.T) {
	users := newFakeUserStore()
	assets := newFakeAssetStore()
	root := t.TempDir()
	p := NewPhotoProvisioner(users, assets, root, "/media")

	p.Provision(1, photoContact(t))

	changed := photoContact(t)
	changed.Photo = base64.StdEncoding.EncodeToString([]byte("different-image-bytes"))
	outcomes := p.Provision(1, changed)

	require.Len(t, outcomes, 2)
	assert.Equal(t, OutcomeReplacedPrior, outcomes[0].Kind)
	assert.Equal(t, OutcomeStored, outcomes[1].Kind)

	// The prior asset was deleted and the new one registered in its place.
	assert.Equal(t, []uint{1}, assets.deleted)
	require.Len(t, assets.registered, 2)

	written, err := os.ReadFile(filepath.Join(root, "Ana-Lee.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("different-image-bytes"), written)
}

func TestPhotoProvisioner_MissingRoot(t *testing.T) {
	users := newFakeUserStore()
	assets := newFakeAssetStore()
	p := NewPhotoProvisioner(users, assets, t.TempDir()+"/missing", "/media")

	outcomes := p.Provision(1, photoContact(t))

	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeFailed, outcomes[0].Kind)
	assert.Contains(t, outcomes[0].Reason, "path does not exist")
}

func TestPhotoProvisioner_NoPhoto(t *testing.T) {
	users := newFakeUserStore()
	assets := newFakeAssetStore()
	p := NewPhotoProvisioner(users, assets, t.TempDir(), "/media")

	contact := photoContact(t)
	contact.Photo = ""
	outcomes := p.Provision(1, contact)

	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeFailed, outcomes[0].Kind)
	assert.Equal(t, "no photo for ana@example.com", outcomes[0].Reason)
}

func TestPhotoProvisioner_InvalidEncoding(t *testing.T) {
	users := newFakeUserStore()
	assets := newFakeAssetStore()
	p := NewPhotoProvisioner(users, assets, t.TempDir(), "/media")

	contact := photoContact(t)
	contact.Photo = "!!! not base64 !!!"
	outcomes := p.Provision(1, contact)

	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeFailed, outcomes[0].Kind)
	assert.Contains(t, outcomes[0].Reason, "invalid photo encoding")
}

func TestPhotoProvisioner_ValidateRoot(t *testing.T) {
	t.Run("accepts a writable directory", func(t *testing.T) {
		p := NewPhotoProvisioner(newFakeUserStore(), newFakeAssetStore(), t.TempDir(), "/media")
		assert.NoError(t, p.ValidateRoot())
	})

	t.Run("rejects a missing directory", func(t *testing.T) {
		p := NewPhotoProvisioner(newFakeUserStore(), newFakeAssetStore(), t.TempDir()+"/nope", "/media")
		assert.ErrorIs(t, p.ValidateRoot(), ErrPathMissing)
	})

	t.Run("rejects a plain file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		p := NewPhotoProvisioner(newFakeUserStore(), newFakeAssetStore(), file, "/media")
		assert.ErrorIs(t, p.ValidateRoot(), ErrPathMissing)
	})
}
