package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/rolodexd/rolodex/server/contacts"
	"github.com/rolodexd/rolodex/server/cron"
	"github.com/rolodexd/rolodex/server/gstorage"
	"github.com/rolodexd/rolodex/server/hunter"
	"github.com/rolodexd/rolodex/server/logger"
	"github.com/rolodexd/rolodex/server/models"
	"github.com/rolodexd/rolodex/shared"
	"github.com/spf13/viper"
)

const sqliteDbFileName = "rolodex.db"

var (
	logg           = logger.NewLogger()
	validate       = validator.New()
	contactService *contacts.Service
)

// Start boots the contact-manager server from the given config: it opens
// (or restores) the sqlite db, wires the hunter verification client into the
// contact service, registers routes & runs until interrupted.
func Start(config *viper.Viper, devMode bool) {
	serverConfig := &shared.ServerConfig{}
	fatalOnError(config.Unmarshal(serverConfig))
	fatalOnError(validate.Struct(serverConfig))

	dbPath := filepath.Join(configDirectory(devMode), sqliteDbFileName)

	// ---------------------------------------------------------------------------------//
	// Optional sqlite backup/restore via google cloud storage
	// --------------------------------------------------------------------------------//

	var gStorage *gstorage.GStorage
	if serverConfig.Google.Storage.SqliteBackupEnabled() {
		var err error
		gStorage, err = gstorage.NewGStorage(serverConfig.Google.ApplicationCredentials)
		fatalOnError(err)

		restoreSqliteDbIfMissing(gStorage, serverConfig.Google.Storage, dbPath)
	}

	// ---------------------------------------------------------------------------------//
	// Database & service wiring
	// --------------------------------------------------------------------------------//

	db, err := models.Initialize(dbPath, serverConfig.Sqlite.PassPhrase)
	fatalOnError(err)

	hunterClient := hunter.NewClient(serverConfig.Hunter, logg)
	if serverConfig.Hunter.APIKey == "" {
		logg.Warn("no hunter.io api key configured - email verification will return mock scores")
	}

	contactService = contacts.NewService(db, hunterClient, logg)

	// ---------------------------------------------------------------------------------//
	// Router & scheduled jobs
	// --------------------------------------------------------------------------------//

	router := mux.NewRouter()
	router.Use(jsonContentTypeMiddleware)
	registerContactRoutes(router)

	scheduler := cron.NewScheduler(serverConfig.Cron.TimeZone)

	var finalBackup func()
	if serverConfig.Google.Storage.SqliteBackupEnabled() {
		scheduleSqliteBackup(scheduler, gStorage, serverConfig.Google.Storage, dbPath)
		scheduler.StartAsync()
		finalBackup = func() { backupSqliteDb(gStorage, serverConfig.Google.Storage, dbPath) }
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", serverConfig.Listener.Port),
		Handler: loggingMiddleware(corsMiddleware(serverConfig.Cors.AllowedOrigins)(router)),
	}

	go serve(server)

	// Block until interrupt/terminate signal, then clean up
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cleanup(scheduler, server, finalBackup)
}

func registerContactRoutes(router *mux.Router) {
	router.HandleFunc("/contacts/verify-email/{email}", verifyEmailHandler).Methods("GET")
	router.HandleFunc("/contacts", createContactHandler).Methods("POST")
	router.HandleFunc("/contacts", listContactsHandler).Methods("GET")
	router.HandleFunc("/contacts/{id:[0-9]+}", findContactHandler).Methods("GET")
	router.HandleFunc("/contacts/{id:[0-9]+}", updateContactHandler).Methods("PUT")
	router.HandleFunc("/contacts/{id:[0-9]+}", patchContactHandler).Methods("PATCH")
	router.HandleFunc("/contacts/{id:[0-9]+}", deleteContactHandler).Methods("DELETE")
}
