package handlers

import (
	"testing"

	"pass-platform/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venueCollection() *core.Collection {
	c := core.NewBaseCollection("venues")
	c.Fields.Add(
		&core.TextField{Name: "name"},
		&core.TextField{Name: "short_name"},
		&core.TextField{Name: "address"},
		&core.NumberField{Name: "latitude"},
		&core.NumberField{Name: "longitude"},
		&core.URLField{Name: "google_maps_link"},
		&core.URLField{Name: "yandex_maps_link"},
	)
	return c
}

func TestVenueFromRecord(t *testing.T) {
	record := core.NewRecord(venueCollection())
	record.Set("id", "4d0f9d2a-6c3e-4f5a-8b1d-9e7c2a0b3f4d")
	record.Set("name", "Opera Garden")
	record.Set("short_name", "Garden")
	record.Set("address", "54 Mashtots Ave")
	record.Set("latitude", 40.1853)
	record.Set("longitude", 44.5144)
	record.Set("google_maps_link", "https://maps.google.com/?q=40.1853,44.5144")
	record.Set("yandex_maps_link", "https://yandex.com/maps/?ll=44.5144,40.1853")

	v := venueFromRecord(record)
	assert.Equal(t, "4d0f9d2a-6c3e-4f5a-8b1d-9e7c2a0b3f4d", v.ID)
	assert.Equal(t, "Opera Garden", v.Name)
	assert.Equal(t, "Garden", v.ShortName)
	assert.InDelta(t, 40.1853, v.Latitude, 0.0001)

	resp := venueResponse(record)
	require.NotNil(t, resp.Address)
	assert.Equal(t, "54 Mashtots Ave", *resp.Address)
}

func TestVenueResponseOmitsEmptyAddress(t *testing.T) {
	record := core.NewRecord(venueCollection())
	record.Set("name", "Pop-up Stage")

	assert.Nil(t, venueResponse(record).Address)
}

func TestPersonFromRecord(t *testing.T) {
	c := core.NewBaseCollection("persons")
	c.Fields.Add(
		&core.TextField{Name: "name"},
		&core.EmailField{Name: "email"},
		&core.TextField{Name: "instagram_handle"},
		&core.TextField{Name: "telegram_handle"},
		&core.SelectField{Name: "status", MaxSelect: 1, Values: []string{"pending", "approved", "rejected", "member", "free"}},
		&core.URLField{Name: "avatar_url"},
	)

	record := core.NewRecord(c)
	record.Set("name", "Ani Petrosyan")
	record.Set("email", "ani@example.com")
	record.Set("status", "member")
	record.Set("instagram_handle", "@ani")

	p := personFromRecord(record)
	assert.Equal(t, "Ani Petrosyan", p.Name)
	assert.Equal(t, models.PersonMember, p.Status)
	assert.Equal(t, "@ani", p.InstagramHandle)
	assert.Empty(t, p.TelegramHandle)

	resp := personResponse(record)
	require.NotNil(t, resp.InstagramHandle)
	assert.Nil(t, resp.TelegramHandle)
	assert.Nil(t, resp.AvatarURL)
}

func TestEventFromRecord(t *testing.T) {
	c := core.NewBaseCollection("events")
	c.Fields.Add(
		&core.TextField{Name: "name"},
		&core.DateField{Name: "starts_at"},
		&core.DateField{Name: "ends_at"},
		&core.DateField{Name: "early_bird_date"},
		&core.TextField{Name: "venue_id"},
		&core.URLField{Name: "image_url"},
		&core.TextField{Name: "description"},
		&core.NumberField{Name: "early_bird_price", OnlyInt: true},
		&core.NumberField{Name: "general_admission_price", OnlyInt: true},
		&core.NumberField{Name: "member_ticket_price", OnlyInt: true},
		&core.NumberField{Name: "max_capacity", OnlyInt: true},
		&core.BoolField{Name: "shared"},
	)

	starts, err := types.ParseDateTime("2026-09-12 19:30:00.000Z")
	require.NoError(t, err)

	record := core.NewRecord(c)
	record.Set("name", "Autumn Opening")
	record.Set("starts_at", starts)
	record.Set("venue_id", "4d0f9d2a-6c3e-4f5a-8b1d-9e7c2a0b3f4d")
	record.Set("general_admission_price", 8000)
	record.Set("shared", true)

	ev := eventFromRecord(record)
	assert.Equal(t, "Autumn Opening", ev.Name)
	assert.Equal(t, starts.Time(), ev.StartsAt)
	assert.True(t, ev.Shared)
	require.NotNil(t, ev.GeneralAdmissionPrice)
	assert.Equal(t, 8000, *ev.GeneralAdmissionPrice)
	// Fields the record never carried stay absent, not zero-valued.
	assert.Nil(t, ev.EndsAt)
	assert.Nil(t, ev.EarlyBirdPrice)
	assert.Nil(t, ev.MaxCapacity)

	resp := eventResponse(record)
	assert.Equal(t, ev.StartsAt, resp.StartsAt)
	assert.Nil(t, resp.Description)
	require.NotNil(t, resp.GeneralAdmissionPrice)
	assert.Equal(t, 8000, *resp.GeneralAdmissionPrice)
}
