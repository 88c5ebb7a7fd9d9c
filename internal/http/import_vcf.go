package http

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yrbane/nethttp.net-vcf-import/internal/audit"
	"github.com/yrbane/nethttp.net-vcf-import/internal/config"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/assets"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/users"
	"github.com/yrbane/nethttp.net-vcf-import/internal/importer"
	"github.com/yrbane/nethttp.net-vcf-import/internal/settingsstore"
	"github.com/yrbane/nethttp.net-vcf-import/internal/vcard"
)

// maxUploadBytes caps VCF uploads. Photo-bearing cards are large; batches
// are expected to stay in the tens-to-hundreds of contacts.
const maxUploadBytes = 32 << 20

// ImportController handles the two-step import round trip: upload/review
// and confirm.
type ImportController struct {
	users    *users.Repository
	assets   *assets.Repository
	settings *settingsstore.SettingsStore
	auditor  *audit.Auditor
	cfg      config.Users
	photoURL string
}

func NewImportController(
	usersRepo *users.Repository,
	assetsRepo *assets.Repository,
	settings *settingsstore.SettingsStore,
	auditor *audit.Auditor,
	cfg config.Users,
	photoURL string,
) *ImportController {
	return &ImportController{
		users:    usersRepo,
		assets:   assetsRepo,
		settings: settings,
		auditor:  auditor,
		cfg:      cfg,
		photoURL: photoURL,
	}
}

// VCFUploadResult is the review payload: parsed contacts grouped by
// category, keyed by their batch index for the confirm round trip.
type VCFUploadResult struct {
	Total  int                           `json:"total"`
	Groups map[string][]vcard.GroupEntry `json:"groups"`
	Roles  []string                      `json:"roles"`
}

// Upload parses an uploaded VCF file and returns the grouped contacts for
// operator review. A malformed payload fails the whole batch; nothing is
// imported at this stage.
func (c *ImportController) Upload(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("vcf_file")
	if err != nil {
		respondBadRequest(ctx, "No VCF file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondInternalError(ctx, err, "reading VCF upload")
		return
	}

	contacts, err := vcard.Parse(data, c.cfg.DefaultRole)
	if err != nil {
		if errors.Is(err, vcard.ErrParse) {
			respondBadRequest(ctx, fmt.Sprintf("Failed to parse VCF: %v", err))
			return
		}
		respondInternalError(ctx, err, "parsing VCF upload")
		return
	}

	ctx.JSON(http.StatusOK, VCFUploadResult{
		Total:  len(contacts),
		Groups: vcard.GroupByCategory(contacts),
		Roles:  c.cfg.Roles,
	})
}

// ConfirmContact is one row of the review screen as resubmitted by the
// operator. Only selected rows are processed.
type ConfirmContact struct {
	Selected  bool              `json:"selected"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Note      *string           `json:"note,omitempty"`
	Address   map[string]string `json:"address,omitempty"`
	Photo     string            `json:"photo,omitempty"`
	Role      string            `json:"role"`
}

type ConfirmRequest struct {
	Contacts []ConfirmContact `json:"contacts"`
}

type ConfirmResult struct {
	Submitted           int                `json:"submitted"`
	SkippedMissingEmail int                `json:"skipped_missing_email"`
	Outcomes            []importer.Outcome `json:"outcomes"`
}

// Confirm reconciles the confirmed contacts into user accounts and
// provisions their photos. Contacts are processed in submission order; a
// single contact's failure is reported in its outcome and never aborts the
// batch.
func (c *ImportController) Confirm(ctx *gin.Context) {
	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid confirm payload: "+err.Error())
		return
	}

	edited, skipped := c.validateContacts(req.Contacts)

	reconciler := importer.NewReconciler(c.users, importer.NewPhotoProvisioner(
		c.users,
		c.assets,
		c.settings.GetPhotoStoragePath(),
		c.photoURL,
	))
	outcomes := reconciler.Run(edited)

	if c.auditor != nil {
		record := audit.NewImportRecord(len(edited), outcomes)
		if _, err := c.auditor.SaveJSON(record); err != nil {
			log.Printf("Failed to save import audit record: %v", err)
		}
	}

	ctx.JSON(http.StatusOK, ConfirmResult{
		Submitted:           len(edited),
		SkippedMissingEmail: skipped,
		Outcomes:            outcomes,
	})
}

// validateContacts narrows the loosely-typed form rows into typed contacts:
// unselected rows are dropped, rows without an email are counted but never
// reach the reconciler, and unknown roles fall back to the default role.
func (c *ImportController) validateContacts(rows []ConfirmContact) ([]importer.EditedContact, int) {
	var (
		edited  []importer.EditedContact
		skipped int
	)
	for _, row := range rows {
		if !row.Selected {
			continue
		}
		if row.Email == "" {
			skipped++
			continue
		}
		edited = append(edited, importer.EditedContact{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			Note:      row.Note,
			Address:   row.Address,
			Photo:     row.Photo,
			Role:      c.validRole(row.Role),
		})
	}
	return edited, skipped
}

func (c *ImportController) validRole(role string) string {
	for _, known := range c.cfg.Roles {
		if role == known {
			return role
		}
	}
	return c.cfg.DefaultRole
}
