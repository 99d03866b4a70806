package databaseaccess

import "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"

func NewDatabase(filePath string) (core.Database, error) {
	db := &BBoltDatabase{}
	if err := db.Init(filePath); err != nil {
		return nil, err
	}

	return db, nil
}
