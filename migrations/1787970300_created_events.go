package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")
		useExternalIDs(collection)

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true},
			&core.DateField{Name: "starts_at", Required: true},
			&core.DateField{Name: "ends_at"},
			&core.DateField{Name: "early_bird_date"},
			&core.TextField{Name: "venue_id", Required: true},
			&core.URLField{Name: "image_url"},
			&core.TextField{Name: "description"},
			&core.NumberField{Name: "early_bird_price", OnlyInt: true},
			&core.NumberField{Name: "general_admission_price", OnlyInt: true},
			&core.NumberField{Name: "member_ticket_price", OnlyInt: true},
			&core.NumberField{Name: "max_capacity", OnlyInt: true},
			&core.BoolField{Name: "shared"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_events_venue", false, "venue_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
