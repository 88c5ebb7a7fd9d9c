package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/yrbane/nethttp.net-vcf-import/internal/audit"
	"github.com/yrbane/nethttp.net-vcf-import/internal/config"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/assets"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/settings"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/users"
	"github.com/yrbane/nethttp.net-vcf-import/internal/importer"
	"github.com/yrbane/nethttp.net-vcf-import/internal/settingsstore"
	"github.com/yrbane/nethttp.net-vcf-import/internal/vcard"
)

// VCFImportCommand imports every emailed contact of a VCF file without the
// review round trip. Intended for data-migration runs.
type VCFImportCommand struct {
	VCFPath      string
	DatabasePath string
	Role         string
	DryRun       bool
}

func NewVCFImportCommand() *VCFImportCommand {
	return &VCFImportCommand{}
}

func (cmd *VCFImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("vcf-import", flag.ExitOnError)

	fs.StringVar(&cmd.VCFPath, "file", "", "Path to the VCF file to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.Role, "role", "", "Role assigned to imported users (defaults to the configured default role)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and list contacts without creating users")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s vcf-import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import users from a VCF (vCard) file. Every contact that carries an\n")
		fmt.Fprintf(os.Stderr, "email address is created or updated; contacts without one are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import all contacts as subscribers:\n")
		fmt.Fprintf(os.Stderr, "  %s vcf-import -file contacts.vcf\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be imported:\n")
		fmt.Fprintf(os.Stderr, "  %s vcf-import -file contacts.vcf -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.VCFPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *VCFImportCommand) Run() error {
	fmt.Println("VCF Import")
	fmt.Println("==========")

	cfg := config.NewConfig()
	if cmd.Role == "" {
		cmd.Role = cfg.Users.DefaultRole
	}

	data, err := os.ReadFile(cmd.VCFPath)
	if err != nil {
		return fmt.Errorf("failed to read VCF file: %w", err)
	}

	contacts, err := vcard.Parse(data, cmd.Role)
	if err != nil {
		return fmt.Errorf("failed to parse VCF file: %w", err)
	}
	fmt.Printf("Parsed %d contacts from %s\n", len(contacts), cmd.VCFPath)

	if cmd.DryRun {
		fmt.Println("\nDRY RUN MODE - No changes will be made")
		for i, contact := range contacts {
			email := contact.PrimaryEmail()
			if email == "" {
				email = "(no email, will be skipped)"
			}
			fmt.Printf("  %3d. %s %s <%s>\n", i+1, contact.FirstName(), contact.LastName(), email)
		}
		return nil
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	usersRepo := users.NewRepository(db.DB, cfg.Users.BcryptCost)
	assetsRepo := assets.NewRepository(db.DB)
	settingsStore := settingsstore.New(settings.NewRepository(db.DB), cfg.Photos)

	reconciler := importer.NewReconciler(usersRepo, importer.NewPhotoProvisioner(
		usersRepo, assetsRepo, settingsStore.GetPhotoStoragePath(), cfg.Photos.BaseURL,
	))

	edited := make([]importer.EditedContact, 0, len(contacts))
	for _, contact := range contacts {
		ec := importer.EditedContact{
			FirstName: contact.FirstName(),
			LastName:  contact.LastName(),
			Email:     contact.PrimaryEmail(),
			Photo:     contact.Photo,
			Role:      cmd.Role,
		}
		if len(contact.Phones) > 0 {
			ec.Phone = contact.Phones[0]
		}
		if note := contact.Note(); note != "" {
			ec.Note = &note
		}
		if len(contact.Addresses) > 0 {
			ec.Address = contact.Addresses[0]
		}
		edited = append(edited, ec)
	}

	outcomes := reconciler.Run(edited)

	record := audit.NewImportRecord(len(edited), outcomes)
	if _, err := audit.NewAuditor(cfg.Audit.Dir).SaveJSON(record); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save audit record: %v\n", err)
	}

	fmt.Println("\nResults:")
	for _, outcome := range outcomes {
		fmt.Printf("  - %s\n", outcome)
	}
	fmt.Printf("\nCreated: %d, Updated: %d, Failed: %d\n", record.Created, record.Updated, record.Failed)

	return nil
}
