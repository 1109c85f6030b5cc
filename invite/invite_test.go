package invite

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/zoobzio/replica"
	"github.com/zoobzio/replica/json"
	"golang.org/x/text/language"
)

func assertCode(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	code, ok := replica.CodeOf(err)
	if !ok {
		t.Fatalf("expected CodedError, got %T: %v", err, err)
	}
	if code != want {
		t.Errorf("code = %s, want %s (%v)", code, want, err)
	}
}

func TestDegreeToRadian(t *testing.T) {
	if got := DegreeToRadian(90); got != math.Pi/2 {
		t.Errorf("DegreeToRadian(90) = %v, want %v", got, math.Pi/2)
	}
	if got := DegreeToRadian(180); got != math.Pi {
		t.Errorf("DegreeToRadian(180) = %v, want %v", got, math.Pi)
	}
	if got := math.Round(DegreeToRadian(-145)*100) / 100; got != -2.53 {
		t.Errorf("DegreeToRadian(-145) = %v, want -2.53", got)
	}
}

func TestDistance(t *testing.T) {
	delhi := Location{Latitude: 28.644800, Longitude: 77.216721}
	mumbai := Location{Latitude: 19.228825, Longitude: 72.854118}
	london := Location{Latitude: 51.509865, Longitude: -0.118092}

	tests := []struct {
		name string
		a, b Location
		want int
	}{
		{"delhi to mumbai", delhi, mumbai, 1136},
		{"mumbai to delhi", mumbai, delhi, 1136},
		{"london to delhi", london, delhi, 6708},
		{"same point", london, london, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Distance(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Distance() error: %v", err)
			}
			if int(d) != tt.want {
				t.Errorf("Distance() = %v, want %d", d, tt.want)
			}
		})
	}
}

func TestDistance_Invalid(t *testing.T) {
	tests := []struct {
		name string
		a, b Location
		code string
	}{
		{"latitude", Location{360.1, 45}, Location{450.1, -137.3}, CodeInvalidLatitude},
		{"second latitude", Location{10, 45}, Location{-90.5, 0}, CodeInvalidLatitude},
		{"longitude", Location{67.1, 45}, Location{12.2, -537.3}, CodeInvalidLongitude},
		{"nan", Location{math.NaN(), 0}, Location{0, 0}, CodeInvalidLatitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Distance(tt.a, tt.b)
			assertCode(t, err, tt.code)
			if !errors.Is(err, replica.ErrInvalidLocation) {
				t.Error("expected errors.Is(err, ErrInvalidLocation)")
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	loc, err := ParseCoordinates("1.28304, 103.86077")
	if err != nil {
		t.Fatalf("ParseCoordinates() error: %v", err)
	}
	if loc.Latitude != 1.28304 || loc.Longitude != 103.86077 {
		t.Errorf("ParseCoordinates() = %+v", loc)
	}

	tests := []struct {
		input string
		code  string
	}{
		{"51.5136102", CodeInvalidOffice},
		{"1,2,3", CodeInvalidOffice},
		{"north,south", CodeInvalidOffice},
		{",103.86077", CodeIncompleteLocation},
		{"1.28304, ", CodeIncompleteLocation},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCoordinates(tt.input)
			assertCode(t, err, tt.code)
		})
	}
}

func TestLoadFile(t *testing.T) {
	partners, err := LoadFile("testdata/partners.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(partners) != 5 {
		t.Fatalf("len(partners) = %d, want 5", len(partners))
	}
	if partners[3].Offices != nil {
		t.Error("partner without offices should decode with nil Offices")
	}
	if partners[1].Offices[1].Address != "Manchester, UK" {
		t.Errorf("office address = %q", partners[1].Offices[1].Address)
	}

	yamlPartners, err := LoadFile("testdata/partners.yaml")
	if err != nil {
		t.Fatalf("LoadFile(yaml) error: %v", err)
	}
	if len(yamlPartners) != 2 || yamlPartners[0].Organization != "Spring Development" {
		t.Errorf("LoadFile(yaml) = %+v", yamlPartners)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	paths := []string{
		"testdata/missing.json",
		"testdata/garbage.json",
		"testdata/garbage.txt",
		"testdata/object.json",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			_, err := LoadFile(path)
			assertCode(t, err, CodeInvalidInput)
			if !errors.Is(err, replica.ErrInvalidInput) {
				t.Error("expected errors.Is(err, ErrInvalidInput)")
			}
		})
	}
}

func TestDecode_NonArrayRoot(t *testing.T) {
	_, err := Decode(json.New(), []byte(`"partners"`))
	assertCode(t, err, CodeInvalidInput)
}

func TestDecode_LooseOffices(t *testing.T) {
	partners, err := LoadFile("testdata/partners-loose.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(partners) != 3 {
		t.Fatalf("len(partners) = %d, want 3", len(partners))
	}
	if partners[1].Offices != nil || partners[2].Offices != nil {
		t.Error("offices that are not arrays should decode as nil")
	}
	if partners[1].Organization != "Scattered Ltd" {
		t.Errorf("Organization = %q", partners[1].Organization)
	}

	got, err := Candidates(partners)
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}
	if len(got) != 1 || got[0].CompanyName != "Spring Development" {
		t.Errorf("Candidates() = %+v, want only Spring Development", got)
	}
}

func TestDecode_NonStringCoordinates(t *testing.T) {
	partners, err := LoadFile("testdata/partners-numeric.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if got := partners[0].Offices[0]; got.Coordinates != "" || got.Address != "1 Grid Street, London" {
		t.Errorf("office = %+v", got)
	}
	_, err = Candidates(partners)
	assertCode(t, err, CodeInvalidOffice)
}

func TestCandidates(t *testing.T) {
	partners, err := LoadFile("testdata/partners.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	got, err := Candidates(partners)
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Candidates()) = %d, want 2: %+v", len(got), got)
	}
	if got[0].CompanyName != "Aerial Solutions" || got[1].CompanyName != "Spring Development" {
		t.Errorf("Candidates() order = %q, %q", got[0].CompanyName, got[1].CompanyName)
	}
	if got[1].Address != "Banbury Court, 12 Gresse Street, London W1T 1RT" {
		t.Errorf("Address = %q", got[1].Address)
	}
	if got[1].DistanceKm > 5 {
		t.Errorf("DistanceKm = %v, want < 5", got[1].DistanceKm)
	}
}

func TestCandidates_Radius(t *testing.T) {
	partners, err := LoadFile("testdata/partners.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	tests := []struct {
		name   string
		radius float64
		want   int
	}{
		{"city", 10, 1},
		{"default", DefaultRadiusKm, 2},
		{"country", 500, 4},
		{"world", 20000, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Candidates(partners, WithRadius(tt.radius))
			if err != nil {
				t.Fatalf("Candidates() error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Candidates()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestCandidates_Margin(t *testing.T) {
	// About 103 km due north of the default epicenter.
	partners := []Partner{{
		Organization: "Edge",
		Offices:      []Office{{Address: "North", Coordinates: "52.441719,-0.141099"}},
	}}

	got, err := Candidates(partners)
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("default margin: len = %d, want 1", len(got))
	}

	got, err = Candidates(partners, WithMargin(1))
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("margin 1: len = %d, want 0", len(got))
	}
}

func TestCandidates_Epicenter(t *testing.T) {
	partners, err := LoadFile("testdata/partners.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	singapore := Location{Latitude: 1.3521, Longitude: 103.8198}
	got, err := Candidates(partners, WithEpicenter(singapore))
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}
	if len(got) != 1 || got[0].CompanyName != "Blue Square 360" {
		t.Errorf("Candidates() = %+v", got)
	}

	_, err = Candidates(partners, WithEpicenter(Location{Latitude: 91}))
	assertCode(t, err, CodeInvalidEpicenter)
}

func TestCandidates_Collation(t *testing.T) {
	here := "51.515419,-0.141099"
	partners := []Partner{
		{Organization: "Zeta", Offices: []Office{{Address: "z", Coordinates: here}}},
		{Organization: "Apple", Offices: []Office{{Address: "first", Coordinates: here}}},
		{Organization: "äpfel", Offices: []Office{{Address: "ä", Coordinates: here}}},
		{Organization: "Apple", Offices: []Office{{Address: "second", Coordinates: here}}},
	}

	got, err := Candidates(partners, WithLocale(language.German))
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}

	want := []string{"äpfel", "Apple", "Apple", "Zeta"}
	if len(got) != len(want) {
		t.Fatalf("len(Candidates()) = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.CompanyName != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, c.CompanyName, want[i])
		}
	}
	if got[1].Address != "first" || got[2].Address != "second" {
		t.Error("equal names should keep dataset order")
	}
}

func TestCandidates_InvalidOffice(t *testing.T) {
	partners, err := LoadFile("testdata/partners-bad.json")
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	_, err = Candidates(partners)
	assertCode(t, err, CodeInvalidOffice)
}

func TestCandidates_OutOfRangeOffice(t *testing.T) {
	partners := []Partner{{
		Organization: "Nowhere",
		Offices:      []Office{{Coordinates: "95,0"}},
	}}
	_, err := Candidates(partners)
	assertCode(t, err, CodeInvalidLatitude)
}

func TestInvite(t *testing.T) {
	report, err := Invite(context.Background(), "testdata/partners.json")
	if err != nil {
		t.Fatalf("Invite() error: %v", err)
	}
	if report.RadiusKm != DefaultRadiusKm {
		t.Errorf("RadiusKm = %v, want %v", report.RadiusKm, DefaultRadiusKm)
	}
	if report.Epicenter != DefaultEpicenter {
		t.Errorf("Epicenter = %+v", report.Epicenter)
	}
	if report.Offices != 5 {
		t.Errorf("Offices = %d, want 5", report.Offices)
	}
	if len(report.Candidates) != 2 {
		t.Errorf("len(Candidates) = %d, want 2", len(report.Candidates))
	}

	_, err = Invite(context.Background(), "testdata/partners-bad.json")
	assertCode(t, err, CodeInvalidOffice)
}
