// Package invite selects partner offices within a radius of an epicenter.
//
// A dataset is an array of partners, each with zero or more offices whose
// coordinates are "latitude,longitude" strings. Candidates flattens the
// offices, keeps the ones within the radius and sorts them by organization
// name using locale-aware collation.
//
//	report, err := invite.Invite(ctx, "partners.json", invite.WithRadius(100))
//	if err != nil {
//	    code, _ := replica.CodeOf(err)
//	    ...
//	}
//
// Every failure is a *replica.CodedError with one of the codes below.
package invite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zoobzio/replica"
	"github.com/zoobzio/replica/json"
	"github.com/zoobzio/replica/msgpack"
	"github.com/zoobzio/replica/yaml"
)

// Failure codes.
const (
	CodeInvalidInput       = "ERR::INP::INV"
	CodeInvalidEpicenter   = "ERR::EPI::INV"
	CodeInvalidLocation    = "ERR::LOC::INV"
	CodeIncompleteLocation = "ERR::LOC::INC"
	CodeInvalidLatitude    = "ERR::LAT::INV"
	CodeInvalidLongitude   = "ERR::LON::INV"
	CodeInvalidOffice      = "ERR::LOC::OFF::INV"
)

// Office is one partner office.
type Office struct {
	Location    string `json:"location" yaml:"location" msgpack:"location" bson:"location" xml:"location"`
	Address     string `json:"address" yaml:"address" msgpack:"address" bson:"address" xml:"address"`
	Coordinates string `json:"coordinates" yaml:"coordinates" msgpack:"coordinates" bson:"coordinates" xml:"coordinates"`
}

// Partner is one dataset entry. A nil Offices means the entry has no
// office data and is skipped.
type Partner struct {
	ID                int      `json:"id" yaml:"id" msgpack:"id" bson:"id" xml:"id"`
	URLName           string   `json:"urlName" yaml:"urlName" msgpack:"urlName" bson:"urlName" xml:"urlName"`
	Organization      string   `json:"organization" yaml:"organization" msgpack:"organization" bson:"organization" xml:"organization"`
	CustomerLocations string   `json:"customerLocations" yaml:"customerLocations" msgpack:"customerLocations" bson:"customerLocations" xml:"customerLocations"`
	WillWorkRemotely  bool     `json:"willWorkRemotely" yaml:"willWorkRemotely" msgpack:"willWorkRemotely" bson:"willWorkRemotely" xml:"willWorkRemotely"`
	Website           string   `json:"website" yaml:"website" msgpack:"website" bson:"website" xml:"website"`
	Services          string   `json:"services" yaml:"services" msgpack:"services" bson:"services" xml:"services"`
	Offices           []Office `json:"offices" yaml:"offices" msgpack:"offices" bson:"offices" xml:"offices>office"`
}

// Candidate is an office selected for invitation.
type Candidate struct {
	CompanyName string  `json:"companyName" yaml:"companyName" msgpack:"companyName" bson:"companyName" xml:"companyName"`
	Address     string  `json:"address" yaml:"address" msgpack:"address" bson:"address" xml:"address"`
	Latitude    float64 `json:"latitude" yaml:"latitude" msgpack:"latitude" bson:"latitude" xml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude" msgpack:"longitude" bson:"longitude" xml:"longitude"`
	DistanceKm  float64 `json:"distanceKm" yaml:"distanceKm" msgpack:"distanceKm" bson:"distanceKm" xml:"distanceKm"`
}

// Report is the result of one Invite run.
type Report struct {
	Epicenter  Location    `json:"epicenter" yaml:"epicenter" msgpack:"epicenter" bson:"epicenter" xml:"epicenter"`
	RadiusKm   float64     `json:"radiusKm" yaml:"radiusKm" msgpack:"radiusKm" bson:"radiusKm" xml:"radiusKm"`
	Offices    int         `json:"offices" yaml:"offices" msgpack:"offices" bson:"offices" xml:"offices"`
	Candidates []Candidate `json:"candidates" yaml:"candidates" msgpack:"candidates" bson:"candidates" xml:"candidates>candidate"`
}

// CodecFor returns the dataset codec for a file name, chosen by extension.
func CodecFor(path string) (replica.Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.New(), nil
	case ".yaml", ".yml":
		return yaml.New(), nil
	case ".msgpack", ".mp":
		return msgpack.New(), nil
	default:
		return nil, replica.Coded(replica.ErrInvalidInput, CodeInvalidInput,
			"unable to read input file: unsupported format %q", filepath.Ext(path))
	}
}

// record is a dataset entry as decoded. Offices stays untyped until
// officesOf has checked its shape.
type record struct {
	ID                int    `json:"id" yaml:"id" msgpack:"id"`
	URLName           string `json:"urlName" yaml:"urlName" msgpack:"urlName"`
	Organization      string `json:"organization" yaml:"organization" msgpack:"organization"`
	CustomerLocations string `json:"customerLocations" yaml:"customerLocations" msgpack:"customerLocations"`
	WillWorkRemotely  bool   `json:"willWorkRemotely" yaml:"willWorkRemotely" msgpack:"willWorkRemotely"`
	Website           string `json:"website" yaml:"website" msgpack:"website"`
	Services          string `json:"services" yaml:"services" msgpack:"services"`
	Offices           any    `json:"offices" yaml:"offices" msgpack:"offices"`
}

// Decode decodes a dataset. The root must be an array.
//
// A partner whose offices value is not an array keeps a nil Offices and is
// skipped by Candidates. An office whose coordinates are not a string gets
// empty Coordinates and fails with CodeInvalidOffice once it is located.
func Decode(codec replica.Codec, data []byte) ([]Partner, error) {
	var root any
	if err := codec.Unmarshal(data, &root); err != nil {
		return nil, replica.Coded(replica.ErrInvalidInput, CodeInvalidInput,
			"unable to read input file: %v", err)
	}
	if _, ok := root.([]any); !ok {
		return nil, replica.Coded(replica.ErrInvalidInput, CodeInvalidInput,
			"input file is in invalid format, expected array of objects")
	}

	var records []record
	if err := codec.Unmarshal(data, &records); err != nil {
		return nil, replica.Coded(replica.ErrInvalidInput, CodeInvalidInput,
			"input file is in invalid format: %v", err)
	}

	partners := make([]Partner, 0, len(records))
	for _, r := range records {
		partners = append(partners, Partner{
			ID:                r.ID,
			URLName:           r.URLName,
			Organization:      r.Organization,
			CustomerLocations: r.CustomerLocations,
			WillWorkRemotely:  r.WillWorkRemotely,
			Website:           r.Website,
			Services:          r.Services,
			Offices:           officesOf(r.Offices),
		})
	}
	return partners, nil
}

func officesOf(v any) []Office {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	offices := make([]Office, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		offices = append(offices, Office{
			Location:    textOf(fields["location"]),
			Address:     textOf(fields["address"]),
			Coordinates: stringOf(fields["coordinates"]),
		})
	}
	return offices
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func textOf(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// LoadFile reads and decodes a dataset file.
func LoadFile(path string) ([]Partner, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, replica.Coded(replica.ErrInvalidInput, CodeInvalidInput,
			"unable to read input file: %v", err)
	}
	return Decode(codec, data)
}

// Invite loads the dataset at path and selects the candidates.
func Invite(ctx context.Context, path string, opts ...Option) (report *Report, err error) {
	start := time.Now()
	offices, selected := 0, 0
	replica.EmitInviteStart(ctx, path)
	defer func() {
		replica.EmitInviteComplete(ctx, path, offices, selected, time.Since(start), err)
	}()

	partners, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	for _, p := range partners {
		offices += len(p.Offices)
	}

	cfg := newConfig(opts)
	found, err := candidates(partners, cfg)
	if err != nil {
		return nil, err
	}
	selected = len(found)

	return &Report{
		Epicenter:  cfg.epicenter,
		RadiusKm:   cfg.radius,
		Offices:    offices,
		Candidates: found,
	}, nil
}
