package migrations

import (
	trainops "github.com/goliatone/go-trainops"
)

func init() {
	Register(trainops.GetMigrationsFS())
}
