package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// useExternalIDs relaxes the default id field so records can carry
// caller-assigned UUID ids.
func useExternalIDs(collection *core.Collection) {
	field, ok := collection.Fields.GetByName("id").(*core.TextField)
	if !ok {
		return
	}
	field.Min = 36
	field.Max = 36
	field.Pattern = ""
	field.AutogeneratePattern = ""
}

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("venues")
		useExternalIDs(collection)

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true},
			&core.TextField{Name: "short_name"},
			&core.TextField{Name: "address"},
			&core.NumberField{Name: "latitude"},
			&core.NumberField{Name: "longitude"},
			&core.URLField{Name: "google_maps_link"},
			&core.URLField{Name: "yandex_maps_link"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("venues")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
