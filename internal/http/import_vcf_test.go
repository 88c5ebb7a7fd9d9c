package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yrbane/nethttp.net-vcf-import/internal/config"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/assets"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/settings"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/users"
	"github.com/yrbane/nethttp.net-vcf-import/internal/settingsstore"
)

func setupImportTest(t *testing.T) (*gin.Engine, *users.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_import_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	photoDir := t.TempDir()
	t.Setenv("PHOTO_STORAGE_PATH", photoDir)

	usersCfg := config.Users{
		DefaultRole: "subscriber",
		Roles:       []string{"subscriber", "editor"},
		BcryptCost:  4,
	}
	photosCfg := config.Photos{ContentDir: photoDir, Dir: ".", BaseURL: "/media"}

	usersRepo := users.NewRepository(db.DB, usersCfg.BcryptCost)
	assetsRepo := assets.NewRepository(db.DB)
	store := settingsstore.New(settings.NewRepository(db.DB), photosCfg)

	controller := NewImportController(usersRepo, assetsRepo, store, nil, usersCfg, "/media")
	router := gin.New()
	router.POST("/api/import/vcf", controller.Upload)
	router.POST("/api/import/confirm", controller.Confirm)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, usersRepo, cleanup
}

func uploadVCF(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("vcf_file", "contacts.vcf")
	require.NoError(t, err)
	_, err = part.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/import/vcf", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)
	return w
}

func TestImportController_Upload(t *testing.T) {
	router, _, cleanup := setupImportTest(t)
	defer cleanup()

	vcf := "BEGIN:VCARD\r\nVERSION:3.0\r\nN:Lee;Ana;;;\r\nFN:Ana Lee\r\n" +
		"EMAIL:ana@example.com\r\nCATEGORIES:Friends\r\nEND:VCARD\r\n"

	w := uploadVCF(t, router, vcf)
	assert.Equal(t, http.StatusOK, w.Code)

	var result VCFUploadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Total)
	require.Contains(t, result.Groups, "Friends")
	assert.Equal(t, "ana@example.com", result.Groups["Friends"][0].Contact.PrimaryEmail())
	assert.Contains(t, result.Roles, "subscriber")
}

func TestImportController_Upload_NoFile(t *testing.T) {
	router, _, cleanup := setupImportTest(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/import/vcf", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportController_Upload_MalformedVCF(t *testing.T) {
	router, _, cleanup := setupImportTest(t)
	defer cleanup()

	w := uploadVCF(t, router, "BEGIN:VCARD\r\nnot a property line\r\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Failed to parse VCF")
}

func TestImportController_Confirm(t *testing.T) {
	router, usersRepo, cleanup := setupImportTest(t)
	defer cleanup()

	photo := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))
	payload := map[string]any{
		"contacts": []map[string]any{
			{
				"selected":   true,
				"first_name": "Ana",
				"last_name":  "Lee",
				"email":      "ana@example.com",
				"role":       "subscriber",
				"photo":      photo,
			},
			{
				// Unselected rows never reach the pipeline
				"selected":   false,
				"first_name": "Bob",
				"email":      "bob@example.com",
				"role":       "subscriber",
			},
			{
				// Missing email: flagged at the boundary, not reconciled
				"selected":   true,
				"first_name": "Eve",
				"role":       "subscriber",
			},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/import/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result ConfirmResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, 1, result.SkippedMissingEmail)

	var kinds []string
	for _, o := range result.Outcomes {
		kinds = append(kinds, string(o.Kind))
	}
	assert.Contains(t, kinds, "created")
	assert.Contains(t, kinds, "stored")

	user, err := usersRepo.FindByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ana", user.Login)

	bob, err := usersRepo.FindByEmail("bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, bob)
}

func TestImportController_Confirm_UnknownRoleFallsBack(t *testing.T) {
	router, usersRepo, cleanup := setupImportTest(t)
	defer cleanup()

	payload := `{"contacts":[{"selected":true,"first_name":"Ana","email":"ana@example.com","role":"superadmin"}]}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/import/confirm", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	user, err := usersRepo.FindByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "subscriber", user.Role)
}

func TestImportController_Confirm_InvalidBody(t *testing.T) {
	router, _, cleanup := setupImportTest(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/import/confirm", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
