package model

import "testing"

func TestLevelValues(t *testing.T) {
	cases := []struct {
		name  string
		got   Level
		value string
		valid bool
	}{
		{"admin", LevelAdmin, "admin", true},
		{"operator", LevelOperator, "operador", true},
		{"unknown", Level("root"), "root", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if tc.got.Valid() != tc.valid {
				t.Fatalf("expected valid=%v for %s", tc.valid, tc.got)
			}
		})
	}
}

func TestUserIdentity(t *testing.T) {
	u := User{ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Level: LevelAdmin}
	id := u.Identity()
	if id.UserID != "u1" || id.Name != "Ana" || id.Email != "ana@example.com" || !id.IsAdmin() {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if (User{Level: LevelOperator}).IsAdmin() {
		t.Fatal("operator must not be admin")
	}
}

func TestLatLngPairing(t *testing.T) {
	var w Withdrawal
	if lat, lng := w.LatLng(); lat != nil || lng != nil {
		t.Fatal("expected both coordinates absent")
	}
	if w.HasLocation() {
		t.Fatal("expected no location")
	}

	w.Location = &Coordinates{Latitude: -23.5, Longitude: -46.6}
	lat, lng := w.LatLng()
	if lat == nil || lng == nil || *lat != -23.5 || *lng != -46.6 {
		t.Fatalf("unexpected coordinates: %v %v", lat, lng)
	}

	*lat = 0
	if w.Location.Latitude != -23.5 {
		t.Fatal("LatLng must not alias the record")
	}
}

func TestCoordinatesFrom(t *testing.T) {
	lat, lng := 1.5, 2.5
	if c := CoordinatesFrom(&lat, &lng); c == nil || c.Latitude != 1.5 || c.Longitude != 2.5 {
		t.Fatalf("unexpected coordinates: %+v", c)
	}
	if CoordinatesFrom(&lat, nil) != nil || CoordinatesFrom(nil, &lng) != nil {
		t.Fatal("half pair must produce no location")
	}
}
