// Package catalog holds the static storage-unit offering table. Each entry
// pairs an API route with the pricing defaults stamped onto reservations
// created through that route.
package catalog

import "fmt"

// Unit describes one storage-space offering.
type Unit struct {
	Key             string
	Route           string
	SpaceNumber     string
	SpaceSize       string
	MonthlyRent     int
	AdminFee        int
	SecurityDeposit int
}

// TotalCost is the amount quoted to the customer at reservation time. The
// security deposit is collected separately and is not part of the total.
func (u Unit) TotalCost() int {
	return u.MonthlyRent + u.AdminFee
}

// units is ordered the way the routes are registered.
var units = []Unit{
	{Key: "standard", Route: "/api/reservations", SpaceNumber: "#3008", SpaceSize: "10' x 10'", MonthlyRent: 170, AdminFee: 25, SecurityDeposit: 50},
	{Key: "tent", Route: "/api/tent", SpaceNumber: "#3008", SpaceSize: "Tent Parking", MonthlyRent: 250, AdminFee: 25, SecurityDeposit: 50},
	{Key: "unit-1", Route: "/api/un1", SpaceNumber: "#3008", SpaceSize: "10' x 20'", MonthlyRent: 150, AdminFee: 25, SecurityDeposit: 50},
	{Key: "unit-2", Route: "/api/un2", SpaceNumber: "#3008", SpaceSize: "10' x 25'", MonthlyRent: 200, AdminFee: 25, SecurityDeposit: 50},
	{Key: "unit-3", Route: "/api/un3", SpaceNumber: "#3008", SpaceSize: "12' x 30'", MonthlyRent: 300, AdminFee: 25, SecurityDeposit: 50},
	{Key: "unit-4", Route: "/api/un4", SpaceNumber: "#3008", SpaceSize: "12' x 35'", MonthlyRent: 350, AdminFee: 25, SecurityDeposit: 50},
	{Key: "unit-5", Route: "/api/un5", SpaceNumber: "#3008", SpaceSize: "12' x 40'", MonthlyRent: 400, AdminFee: 25, SecurityDeposit: 50},
}

var byKey = func() map[string]Unit {
	m := make(map[string]Unit, len(units))
	for _, u := range units {
		m[u.Key] = u
	}
	return m
}()

// Lookup returns the unit for the given key. An unknown key is a wiring
// mistake, not user input, so the caller should treat the error as fatal.
func Lookup(key string) (Unit, error) {
	u, ok := byKey[key]
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit type %q", key)
	}
	return u, nil
}

// All returns every unit in route-registration order.
func All() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}
