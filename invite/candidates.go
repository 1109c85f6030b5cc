package invite

import (
	"sort"

	"github.com/zoobzio/replica"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Defaults for Candidates.
const (
	DefaultRadiusKm = 100.0
	DefaultMargin   = 1.05
)

// DefaultEpicenter is central London.
var DefaultEpicenter = Location{Latitude: 51.515419, Longitude: -0.141099}

// Option configures a candidate search.
type Option func(*config)

type config struct {
	radius    float64
	epicenter Location
	locale    language.Tag
	margin    float64
}

func newConfig(opts []Option) config {
	cfg := config{
		radius:    DefaultRadiusKm,
		epicenter: DefaultEpicenter,
		locale:    language.English,
		margin:    DefaultMargin,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRadius sets the search radius in kilometers.
func WithRadius(km float64) Option {
	return func(c *config) {
		c.radius = km
	}
}

// WithEpicenter sets the point distances are measured from.
func WithEpicenter(loc Location) Option {
	return func(c *config) {
		c.epicenter = loc
	}
}

// WithLocale sets the collation locale for sorting organization names.
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.locale = tag
	}
}

// WithMargin sets the factor applied to the radius to absorb the error of
// the spherical model. A margin of 1 disables it.
func WithMargin(f float64) Option {
	return func(c *config) {
		c.margin = f
	}
}

// Candidates returns the offices within the radius, sorted by organization.
// Offices of the same organization keep their dataset order. The search
// stops at the first invalid office.
func Candidates(partners []Partner, opts ...Option) ([]Candidate, error) {
	return candidates(partners, newConfig(opts))
}

func candidates(partners []Partner, cfg config) ([]Candidate, error) {
	if err := cfg.epicenter.Validate(); err != nil {
		return nil, &replica.CodedError{
			Code:    CodeInvalidEpicenter,
			Message: "invalid epicenter coordinates provided: " + err.Error(),
			Err:     replica.ErrInvalidLocation,
		}
	}

	limit := cfg.margin * cfg.radius
	out := []Candidate{}
	for _, p := range partners {
		if p.Offices == nil {
			continue
		}
		for _, office := range p.Offices {
			loc, err := ParseCoordinates(office.Coordinates)
			if err != nil {
				return nil, replica.Coded(replica.ErrInvalidLocation, CodeInvalidOffice,
					"invalid location data for office of <%s>: %v", p.Organization, err)
			}
			d, err := Distance(cfg.epicenter, loc)
			if err != nil {
				return nil, err
			}
			if d > limit {
				continue
			}
			out = append(out, Candidate{
				CompanyName: p.Organization,
				Address:     office.Address,
				Latitude:    loc.Latitude,
				Longitude:   loc.Longitude,
				DistanceKm:  d,
			})
		}
	}

	col := collate.New(cfg.locale)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].CompanyName, out[j].CompanyName) < 0
	})
	return out, nil
}
