package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"
	"github.com/rolodexd/rolodex/server/contacts"
	"github.com/rolodexd/rolodex/utils"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func respond(rw http.ResponseWriter, statusCode int, data interface{}) {
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(data)
}

func writeErrResponse(rw http.ResponseWriter, errs []string, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(errs)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(errs)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(ResponsePayload{Errors: errs})
}

func writeServiceErrResponse(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contacts.ErrContactNotFound):
		writeErrResponse(rw, []string{err.Error()}, http.StatusNotFound)
	case errors.Is(err, contacts.ErrEmailTaken):
		writeErrResponse(rw, []string{err.Error()}, http.StatusConflict)
	default:
		writeErrResponse(rw, []string{err.Error()}, http.StatusInternalServerError)
	}
}

func contactIDFromRequest(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, errors.New("contact id is not in its proper form")
	}

	return uint(id), nil
}

// queryInt reads an integer query param, using fallback when the param is
// absent. A present but unparsable value is an error, not a silent default.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%v must be an integer", name)
	}

	return value, nil
}

func removeUnknownFields(args map[string]interface{}, validFields map[string]bool) {
	for key := range args {
		if !validFields[key] {
			delete(args, key)
		}
	}
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Rolodex server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(scheduler *gocron.Scheduler, server *http.Server, finalBackup func()) {
	// Stop any scheduled backups before the final one runs
	scheduler.Stop()

	if finalBackup != nil {
		finalBackup()
	}

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Rolodex server shutdown failed:%+s", err)
	}

	logg.Infof("Rolodex server stopped properly")
}

// configDirectory retrieves the directory holding the sqlite db
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'rolodex' folder in home directory for prod
	configFolderName := "rolodex"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
