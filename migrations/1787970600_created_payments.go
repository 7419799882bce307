package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		// Settled order history. Live order state is the Redis hash.
		collection := core.NewBaseCollection("payments")

		collection.Fields.Add(
			&core.NumberField{Name: "order_id", Required: true, OnlyInt: true},
			&core.TextField{Name: "person_id", Required: true},
			&core.TextField{Name: "event_id", Required: true},
			&core.NumberField{Name: "amount", Required: true},
			&core.SelectField{
				Name:      "provider",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"VPOS", "MYAMERIA", "IDRAM", "APPLEPAY"},
			},
			&core.TextField{Name: "ticket_holders"},
			&core.TextField{Name: "upstream_payment_id"},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"CREATED", "PENDING", "CONFIRMED", "REJECTED", "REFUNDED"},
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_payments_order", true, "order_id", "")
		collection.AddIndex("idx_payments_upstream", false, "upstream_payment_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
