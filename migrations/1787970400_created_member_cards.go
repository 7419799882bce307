package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("member_cards")
		useExternalIDs(collection)

		collection.Fields.Add(
			&core.NumberField{Name: "serial_number", Required: true, OnlyInt: true},
			&core.TextField{Name: "person_id", Required: true},
			&core.URLField{Name: "apple_pass_url"},
			&core.URLField{Name: "google_pass_url"},
			&core.TextField{Name: "auth_token_hash", Hidden: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_member_cards_serial", true, "serial_number", "")
		collection.AddIndex("idx_member_cards_person", false, "person_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("member_cards")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
