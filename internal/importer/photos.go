package importer

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yrbane/nethttp.net-vcf-import/internal/entities"
	"github.com/yrbane/nethttp.net-vcf-import/internal/utils"
)

var (
	ErrPathMissing     = errors.New("path does not exist")
	ErrPathNotWritable = errors.New("path not writable")
)

// PhotoProvisioner writes a contact's embedded photo under the storage root
// and registers it as a managed asset linked to the user. Unchanged content
// is detected by checksum and skipped; a superseded asset is deleted before
// its replacement is written, so at most one live asset exists per derived
// URL.
type PhotoProvisioner struct {
	users       UserStore
	assets      AssetStore
	storageRoot string
	baseURL     string
}

// NewPhotoProvisioner creates a provisioner rooted at storageRoot. baseURL
// is the public URL prefix stored files are served from.
func NewPhotoProvisioner(users UserStore, assets AssetStore, storageRoot, baseURL string) *PhotoProvisioner {
	return &PhotoProvisioner{
		users:       users,
		assets:      assets,
		storageRoot: storageRoot,
		baseURL:     baseURL,
	}
}

// ValidateRoot checks that the storage root exists as a directory and is
// writable, probing writability with a throwaway file.
func (p *PhotoProvisioner) ValidateRoot() error {
	info, err := os.Stat(p.storageRoot)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPathMissing, p.storageRoot)
	}

	probe := filepath.Join(p.storageRoot, ".vcf-import-probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotWritable, p.storageRoot)
	}
	f.Close()
	if err := os.Remove(probe); err != nil {
		log.Printf("Could not remove probe file %s: %v", probe, err)
	}
	return nil
}

// Provision stores the contact's photo for the given user. It emits
// Unchanged when the stored checksum matches the incoming content,
// ReplacedPrior when a superseded asset was deleted, and Stored on success.
func (p *PhotoProvisioner) Provision(userID uint, contact EditedContact) []Outcome {
	if err := p.ValidateRoot(); err != nil {
		return []Outcome{failed(contact.Email, err.Error())}
	}
	if contact.Photo == "" {
		return []Outcome{failed(contact.Email, "no photo for "+contact.Email)}
	}

	raw, err := base64.StdEncoding.DecodeString(contact.Photo)
	if err != nil {
		return []Outcome{failed(contact.Email, "invalid photo encoding: "+err.Error())}
	}

	sum := sha256.Sum256(raw)
	checksum := hex.EncodeToString(sum[:])

	filename := utils.SanitizeFilename(contact.FirstName+"-"+contact.LastName) + ".png"
	target := filepath.Join(p.storageRoot, filename)
	publicURL := p.baseURL + "/" + filename

	// Idempotence: same content already on disk for this user means no work.
	if _, statErr := os.Stat(target); statErr == nil {
		if stored, ok := p.users.GetMeta(userID, entities.MetaKeyAvatarChecksum); ok && stored == checksum {
			return []Outcome{{Kind: OutcomeUnchanged, Email: contact.Email}}
		}
	}

	var outcomes []Outcome

	// A prior asset at this URL is superseded: remove it (file and registry
	// entry) before the replacement is written.
	prior, err := p.assets.ResolveByURL(publicURL)
	if err != nil {
		return append(outcomes, failed(contact.Email, "asset lookup failed: "+err.Error()))
	}
	if prior != nil {
		if err := p.assets.Delete(prior.ID); err != nil {
			return append(outcomes, failed(contact.Email, "failed to delete prior asset: "+err.Error()))
		}
		outcomes = append(outcomes, Outcome{Kind: OutcomeReplacedPrior, Email: contact.Email})
	}

	if err := os.WriteFile(target, raw, 0644); err != nil {
		return append(outcomes, failed(contact.Email, "failed to write photo: "+err.Error()))
	}

	assetID, err := p.assets.Register(userID, target, publicURL, checksum)
	if err != nil {
		return append(outcomes, failed(contact.Email, "failed to register asset: "+err.Error()))
	}
	if err := p.assets.GenerateSizes(assetID); err != nil {
		log.Printf("Failed to generate derived sizes for asset %d: %v", assetID, err)
	}

	if err := p.users.SetMeta(userID, entities.MetaKeyAvatarAsset, strconv.FormatUint(uint64(assetID), 10)); err != nil {
		log.Printf("Failed to link asset %d to user %d: %v", assetID, userID, err)
	}
	if err := p.users.SetMeta(userID, entities.MetaKeyAvatarChecksum, checksum); err != nil {
		log.Printf("Failed to store photo checksum for user %d: %v", userID, err)
	}

	return append(outcomes, Outcome{Kind: OutcomeStored, Email: contact.Email})
}
