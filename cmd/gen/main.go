// Command gen writes type-safe gorm query helpers for the persistence models.
// The repositories in internal/infra/persistence/postgres use hand-written queries;
// the generated package is for ad-hoc tooling and reporting.
package main

import (
	"gorm.io/gen"

	"phresh/internal/infra/persistence/model"
)

func main() {
	models := []any{
		model.UserModel{},
		model.ProfileModel{},
		model.CleaningModel{},
		model.OfferModel{},
	}

	g := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.ApplyBasic(models...)

	g.Execute()
}
