package db

import (
	"github.com/pkg/errors"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/store"
	"github.com/XiPeng415/kg-explorer/store/db/jsonfile"
	"github.com/XiPeng415/kg-explorer/store/db/sqlite"
)

// NewDriver creates a new dataset driver based on profile.
func NewDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "jsonfile":
		driver, err = jsonfile.NewDriver(profile)
	case "sqlite":
		driver, err = sqlite.NewDriver(profile)
	default:
		return nil, errors.Errorf("unknown dataset driver %q: only 'jsonfile' and 'sqlite' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dataset driver")
	}
	return driver, nil
}
