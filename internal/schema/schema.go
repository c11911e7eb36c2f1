// Package schema declares the relational layout the API serves. Every entity
// names its table, primary key and columns explicitly; nothing is inferred
// from database introspection.
package schema

import (
	"fmt"
	"sort"
)

// Column describes one column of an entity table. Derived columns are owned
// by the service layer (or the database) and rejected on the generic write
// path.
type Column struct {
	Name    string
	Derived bool
}

// Entity binds an API entity type to its table.
type Entity struct {
	Type    string
	Table   string
	PK      string
	Columns []Column
}

// ColumnNames returns the declared column order.
func (e Entity) ColumnNames() []string {
	names := make([]string, 0, len(e.Columns))
	for _, c := range e.Columns {
		names = append(names, c.Name)
	}
	return names
}

// WritableColumn reports whether name is a known, client-writable column.
// The second return distinguishes "unknown" from "known but derived".
func (e Entity) WritableColumn(name string) (writable, known bool) {
	for _, c := range e.Columns {
		if c.Name == name {
			return !c.Derived, true
		}
	}
	return false, false
}

var registry = map[string]Entity{
	"users": {
		Type:  "users",
		Table: "users",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "name"},
			{Name: "email"},
			{Name: "phone"},
			{Name: "street"},
			{Name: "city"},
			{Name: "pin_code"},
			{Name: "date_of_birth"},
			{Name: "created_at", Derived: true},
		},
	},
	"vehicles": {
		Type:  "vehicles",
		Table: "vehicles",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "user_id"},
			{Name: "model"},
			{Name: "vehicle_type"},
			{Name: "battery_capacity_kwh"},
		},
	},
	"user_payments": {
		Type:  "user_payments",
		Table: "user_payments",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "user_id"},
			{Name: "cash"},
			{Name: "online"},
			{Name: "updated_at", Derived: true},
		},
	},
	"charging_stations": {
		Type:  "charging_stations",
		Table: "charging_stations",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "name"},
			{Name: "address"},
			{Name: "city"},
		},
	},
	"chargers": {
		Type:  "chargers",
		Table: "chargers",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "station_id"},
			{Name: "charger_type"},
			{Name: "power_rating_kw"},
		},
	},
	"station_facilities": {
		Type:  "station_facilities",
		Table: "station_facilities",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "station_id"},
			{Name: "parking"},
			{Name: "cafe"},
			{Name: "restroom"},
			{Name: "wifi"},
		},
	},
	"maintenance": {
		Type:  "maintenance",
		Table: "maintenance",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "charger_id"},
			{Name: "duration_hours"},
			{Name: "cost"},
			{Name: "performed_on"},
		},
	},
	"services": {
		Type:  "services",
		Table: "services",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "maintenance_id"},
			{Name: "contact_number"},
		},
	},
	"charging_sessions": {
		Type:  "charging_sessions",
		Table: "charging_sessions",
		PK:    "id",
		Columns: []Column{
			{Name: "id", Derived: true},
			{Name: "user_id"},
			{Name: "vehicle_id"},
			{Name: "charger_id"},
			{Name: "start_time"},
			{Name: "end_time"},
			{Name: "energy_kwh"},
			// cost is always computed server-side from energy_kwh.
			{Name: "cost", Derived: true},
			{Name: "created_at", Derived: true},
		},
	},
}

// Lookup resolves an entity type.
func Lookup(entityType string) (Entity, error) {
	entity, ok := registry[entityType]
	if !ok {
		return Entity{}, fmt.Errorf("schema: unknown entity type %q", entityType)
	}
	return entity, nil
}

// Types returns all registered entity type names, sorted.
func Types() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
