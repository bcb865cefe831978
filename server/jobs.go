package server

import (
	"errors"
	"path/filepath"

	"github.com/go-co-op/gocron"
	"github.com/rolodexd/rolodex/server/gstorage"
	"github.com/rolodexd/rolodex/shared"
	"github.com/rolodexd/rolodex/utils"
)

// scheduleSqliteBackup registers a recurring upload of the contacts db to
// cloud storage on the configured cron schedule.
func scheduleSqliteBackup(scheduler *gocron.Scheduler, gStorage *gstorage.GStorage, config shared.StorageConfig, dbPath string) {
	_, err := scheduler.Cron(config.SqliteBackupSchedule).Tag("sqlite-backup").Do(func() {
		backupSqliteDb(gStorage, config, dbPath)
	})
	fatalOnError(err)

	logg.Infof("sqlite backups scheduled with '%v'", config.SqliteBackupSchedule)
}

func backupSqliteDb(gStorage *gstorage.GStorage, config shared.StorageConfig, dbPath string) {
	if !utils.FileExist(dbPath) {
		logg.Warnf("sqlite backup skipped, %v does not exist yet", dbPath)
		return
	}

	object := backupObjectName(config.Prefix, dbPath)
	if err := gStorage.UploadFile(config.Bucket, object, dbPath); err != nil {
		logg.Errorf("sqlite backup failed: %v", err)
		return
	}

	logg.Infof("sqlite backup uploaded to gs://%v/%v", config.Bucket, object)
}

// restoreSqliteDbIfMissing pulls the last backup before the db is opened, so
// a fresh host picks up where the previous one left off. A brand new install
// with no backup yet is not an error.
func restoreSqliteDbIfMissing(gStorage *gstorage.GStorage, config shared.StorageConfig, dbPath string) {
	if utils.FileExist(dbPath) {
		return
	}

	object := backupObjectName(config.Prefix, dbPath)
	err := gStorage.DownloadFile(config.Bucket, object, dbPath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Infof("no sqlite backup found at gs://%v/%v, starting fresh", config.Bucket, object)
		return
	}
	fatalOnError(err)

	logg.Infof("sqlite db restored from gs://%v/%v", config.Bucket, object)
}

func backupObjectName(prefix, dbPath string) string {
	if prefix == "" {
		return filepath.Base(dbPath)
	}

	return prefix + "/" + filepath.Base(dbPath)
}
