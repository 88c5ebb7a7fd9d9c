package importer

import (
	"encoding/json"
	"log"
	"time"

	"github.com/yrbane/nethttp.net-vcf-import/internal/entities"
	"github.com/yrbane/nethttp.net-vcf-import/internal/utils"
)

// UserStore is the user-store collaborator. FindByEmail returns (nil, nil)
// when no account matches.
type UserStore interface {
	FindByEmail(email string) (*entities.User, error)
	LoginExists(login string) bool
	Create(data entities.UserData) (uint, error)
	Update(data entities.UserData) (uint, error)
	SetMeta(userID uint, key, value string) error
	GetMeta(userID uint, key string) (string, bool)
}

// AssetStore is the asset-store collaborator backing photo provisioning.
// ResolveByURL returns (nil, nil) when no asset is registered at the URL.
type AssetStore interface {
	ResolveByURL(url string) (*entities.Asset, error)
	Register(userID uint, path, url, checksum string) (uint, error)
	Delete(id uint) error
	GenerateSizes(id uint) error
}

// EditedContact is one operator-confirmed contact as resubmitted from the
// review screen. Note and Address are nil when the field was absent, so
// "absent" stays distinguishable from "present but empty" in metadata
// writes.
type EditedContact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Note      *string
	Address   map[string]string
	Photo     string // base64 payload, empty when the contact had none
	Role      string
}

// Reconciler decides create-vs-update for each confirmed contact and drives
// photo provisioning on success. Contacts are processed strictly in
// submission order; one contact's failure never aborts the batch.
type Reconciler struct {
	users  UserStore
	photos *PhotoProvisioner
	now    func() time.Time
}

func NewReconciler(users UserStore, photos *PhotoProvisioner) *Reconciler {
	return &Reconciler{users: users, photos: photos, now: time.Now}
}

// Run processes a confirmed batch. The photo storage root is validated once
// up front: an invalid root disables the photo stage for the whole batch
// (reported as a single failure) without rolling back account work.
func (r *Reconciler) Run(contacts []EditedContact) []Outcome {
	var outcomes []Outcome

	provisionPhotos := true
	if err := r.photos.ValidateRoot(); err != nil {
		outcomes = append(outcomes, failed("", "photo storage: "+err.Error()))
		provisionPhotos = false
	}

	for _, contact := range contacts {
		outcomes = append(outcomes, r.reconcile(contact, provisionPhotos)...)
	}
	return outcomes
}

// Reconcile processes a single confirmed contact, photo stage included.
// A contact with an empty email is skipped silently: no outcomes, no side
// effects.
func (r *Reconciler) Reconcile(contact EditedContact) []Outcome {
	return r.reconcile(contact, true)
}

func (r *Reconciler) reconcile(contact EditedContact, provisionPhoto bool) []Outcome {
	if contact.Email == "" {
		return nil
	}

	existing, err := r.users.FindByEmail(contact.Email)
	if err != nil {
		return []Outcome{failed(contact.Email, "lookup failed: "+err.Error())}
	}

	data := entities.UserData{
		FirstName:    contact.FirstName,
		LastName:     contact.LastName,
		DisplayName:  utils.TitleCase(contact.FirstName) + " " + utils.TitleCase(contact.LastName),
		Email:        contact.Email,
		Role:         contact.Role,
		RegisteredAt: r.now(),
		// Safe defaults: lowest-privilege capabilities, SSL off, host locale
		UseSSL: false,
		Locale: "",
	}
	if contact.Note != nil {
		data.Description = *contact.Note
	}

	var (
		userID  uint
		outcome Outcome
	)

	if existing != nil {
		data.ID = existing.ID
		userID, err = r.users.Update(data)
		if err != nil {
			return []Outcome{failed(contact.Email, "update failed: "+err.Error())}
		}
		outcome = Outcome{Kind: OutcomeUpdated, Email: contact.Email}
	} else {
		login, genErr := GenerateLogin(contact.FirstName, r.users.LoginExists)
		if genErr != nil {
			return []Outcome{failed(contact.Email, genErr.Error())}
		}
		password, pwErr := GeneratePassword()
		if pwErr != nil {
			return []Outcome{failed(contact.Email, "password generation failed: "+pwErr.Error())}
		}

		data.Login = login.Login
		data.Nickname = login.Nickname
		data.Password = password
		data.Slug = utils.Slugify(contact.FirstName + " " + contact.LastName)

		userID, err = r.users.Create(data)
		if err != nil {
			return []Outcome{failed(contact.Email, "create failed: "+err.Error())}
		}
		outcome = Outcome{Kind: OutcomeCreated, Email: contact.Email}
	}

	r.persistMetadata(userID, contact)

	outcomes := []Outcome{outcome}
	if provisionPhoto {
		outcomes = append(outcomes, r.photos.Provision(userID, contact)...)
	}
	return outcomes
}

// persistMetadata writes the auxiliary note and address metadata. Metadata
// failures are logged, not surfaced: the account itself was already
// reconciled.
func (r *Reconciler) persistMetadata(userID uint, contact EditedContact) {
	if contact.Note != nil {
		if err := r.users.SetMeta(userID, entities.MetaKeyNote, *contact.Note); err != nil {
			log.Printf("Failed to store note for user %d: %v", userID, err)
		}
	}
	if contact.Address != nil {
		serialized, err := json.Marshal(contact.Address)
		if err == nil {
			err = r.users.SetMeta(userID, entities.MetaKeyAddress, string(serialized))
		}
		if err != nil {
			log.Printf("Failed to store address for user %d: %v", userID, err)
		}
	}
}
