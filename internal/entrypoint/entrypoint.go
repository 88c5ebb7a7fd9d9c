package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yrbane/nethttp.net-vcf-import/internal/config"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database"
	http_controllers "github.com/yrbane/nethttp.net-vcf-import/internal/http"
)

// Run wires the service together and serves until interrupted.
func Run(cfg *config.Config) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	checkStorageRoot(cfg.Photos.StorageRoot())

	router := http_controllers.NewRouter(cfg, db)
	Serve(router, cfg)
}

// checkStorageRoot warns at startup when the configured photo root is not
// usable. Not fatal: the root can be repointed through the settings API, and
// provisioning re-validates at invocation time.
func checkStorageRoot(root string) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		log.Printf("WARNING: photo storage root %s does not exist; photo provisioning will fail until it is created or reconfigured", root)
		return
	}

	probe := root + "/.vcf-import"
	f, err := os.Create(probe)
	if err != nil {
		log.Printf("WARNING: photo storage root %s is not writable", root)
		return
	}
	f.Close()
	if err := os.Remove(probe); err != nil {
		log.Printf("Could not remove the probe file from %s: %v", root, err)
	}
	log.Printf("Photo storage root %s is ready", root)
}

// Serve runs the HTTP server with graceful shutdown.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Println("Server exiting")
}
