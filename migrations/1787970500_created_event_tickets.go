package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("event_tickets")
		useExternalIDs(collection)

		collection.Fields.Add(
			&core.TextField{Name: "person_id", Required: true},
			&core.TextField{Name: "event_id", Required: true},
			&core.NumberField{Name: "payment_order_id", OnlyInt: true},
			&core.BoolField{Name: "is_used"},
			&core.BoolField{Name: "is_sent"},
			&core.URLField{Name: "apple_pass_url"},
			&core.URLField{Name: "google_pass_url"},
			&core.DateField{Name: "attended_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// One ticket per person per event.
		collection.AddIndex("idx_event_tickets_person_event", true, "person_id, event_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("event_tickets")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
