package invite

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/replica"
)

// EarthRadiusKm is the mean Earth radius used for distances.
const EarthRadiusKm = 6371.0

// Location is a point in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" msgpack:"latitude" bson:"latitude" xml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" msgpack:"longitude" bson:"longitude" xml:"longitude" validate:"gte=-180,lte=180"`
}

var validate = validator.New()

// Validate checks that the latitude and longitude are in range.
// The returned error carries ERR::LAT::INV or ERR::LON::INV.
func (l Location) Validate() error {
	err := validate.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return replica.Coded(replica.ErrInvalidLocation, CodeInvalidLocation, "invalid location: %v", err)
	}
	if verrs[0].Field() == "Latitude" {
		return replica.Coded(replica.ErrInvalidLocation, CodeInvalidLatitude, "invalid latitude %v", l.Latitude)
	}
	return replica.Coded(replica.ErrInvalidLocation, CodeInvalidLongitude, "invalid longitude %v", l.Longitude)
}

// DegreeToRadian converts degrees to radians.
func DegreeToRadian(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance returns the great-circle distance between a and b in kilometers.
//
// It uses the special case of the Vincenty formula for a sphere, which is
// well conditioned for both antipodal and nearby points. Treating the Earth
// as a sphere costs up to about 0.5% against WGS 84.
func Distance(a, b Location) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	latA, lngA := DegreeToRadian(a.Latitude), DegreeToRadian(a.Longitude)
	latB, lngB := DegreeToRadian(b.Latitude), DegreeToRadian(b.Longitude)
	dLng := math.Abs(lngA - lngB)

	sinA, cosA := math.Sincos(latA)
	sinB, cosB := math.Sincos(latB)
	sinD, cosD := math.Sincos(dLng)

	x := cosB * sinD
	y := cosA*sinB - sinA*cosB*cosD
	num := math.Sqrt(x*x + y*y)
	den := sinA*sinB + cosA*cosB*cosD

	return EarthRadiusKm * math.Atan2(num, den), nil
}

// ParseCoordinates parses a "latitude,longitude" string.
func ParseCoordinates(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, replica.Coded(replica.ErrInvalidLocation, CodeInvalidOffice,
			"invalid format of coordinates %q, expected comma separated values", s)
	}

	lat, lng := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lat == "" || lng == "" {
		return Location{}, replica.Coded(replica.ErrInvalidLocation, CodeIncompleteLocation,
			"incomplete coordinates %q", s)
	}

	var loc Location
	var err error
	if loc.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return Location{}, replica.Coded(replica.ErrInvalidLocation, CodeInvalidOffice,
			"invalid latitude in coordinates %q", s)
	}
	if loc.Longitude, err = strconv.ParseFloat(lng, 64); err != nil {
		return Location{}, replica.Coded(replica.ErrInvalidLocation, CodeInvalidOffice,
			"invalid longitude in coordinates %q", s)
	}
	return loc, nil
}
