package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("pass_devices")
		useExternalIDs(collection)

		collection.Fields.Add(
			&core.TextField{Name: "device_id", Required: true},
			&core.TextField{Name: "push_token", Required: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_pass_devices_device", true, "device_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pass_devices")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
