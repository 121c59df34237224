package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	"github.com/siherrmann/wikigraph/helper"
)

//go:embed init.sql
var initSql string

//go:embed checkpoints.sql
var checkpointsSql string

// CheckpointsFunctions lists all functions defined in checkpoints.sql.
var CheckpointsFunctions = []string{
	"init_checkpoints",
	"insert_checkpoint",
	"has_checkpoint",
	"select_checkpoint",
	"delete_checkpoint",
}

// Init creates the extensions needed by the sql functions.
func Init(db *sql.DB) error {
	_, err := db.Exec(initSql)
	if err != nil {
		return helper.NewError("executing init sql", err)
	}
	return nil
}

// LoadCheckpointsSql loads the checkpoint functions into the database.
// If force is false and all functions already exist, loading is skipped.
func LoadCheckpointsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, CheckpointsFunctions)
		if err != nil {
			return helper.NewError("checking checkpoint functions", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(checkpointsSql)
	if err != nil {
		return helper.NewError("executing checkpoints sql", err)
	}

	exist, err := checkFunctions(db, CheckpointsFunctions)
	if err != nil {
		return helper.NewError("verifying checkpoint functions", err)
	} else if !exist {
		return fmt.Errorf("checkpoint functions missing after load")
	}

	log.Println("SQL checkpoint functions loaded successfully")
	return nil
}

// checkFunctions reports whether all given functions exist in the database.
func checkFunctions(db *sql.DB, functions []string) (bool, error) {
	for _, function := range functions {
		var exists bool
		err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1)`, function).Scan(&exists)
		if err != nil {
			return false, helper.NewError(fmt.Sprintf("checking function %v", function), err)
		}
		if !exists {
			return false, nil
		}
	}
	return true, nil
}
