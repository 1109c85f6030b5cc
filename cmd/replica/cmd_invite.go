package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zoobzio/replica/invite"
	"golang.org/x/text/language"
)

type inviteFlags struct {
	file   string
	radius float64
	lat    float64
	lon    float64
	locale string
	format string
}

func newInviteCmd() *cobra.Command {
	f := &inviteFlags{}
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "List partner offices within a radius of an epicenter",
		Long: `Reads a partner dataset (JSON, YAML or msgpack, chosen by extension) and
lists the offices within the radius of the epicenter, sorted by company name.

Examples:
  replica invite --file partners.json
  replica invite --file partners.json --radius 250 --lat 53.48 --lon -2.24
  replica invite --file partners.json --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInvite(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "partners.json", "partner dataset")
	cmd.Flags().Float64VarP(&f.radius, "radius", "r", invite.DefaultRadiusKm, "search radius in kilometers")
	cmd.Flags().Float64Var(&f.lat, "lat", invite.DefaultEpicenter.Latitude, "epicenter latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", invite.DefaultEpicenter.Longitude, "epicenter longitude")
	cmd.Flags().StringVar(&f.locale, "locale", "en", "collation locale for company names")
	cmd.Flags().StringVar(&f.format, "format", formatText, "output format: text, json, yaml, xml, msgpack, bson")
	return cmd
}

func runInvite(cmd *cobra.Command, f *inviteFlags) error {
	tag, err := language.Parse(f.locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", f.locale, err)
	}

	report, err := invite.Invite(cmd.Context(), f.file,
		invite.WithRadius(f.radius),
		invite.WithEpicenter(invite.Location{Latitude: f.lat, Longitude: f.lon}),
		invite.WithLocale(tag),
	)
	if err != nil {
		return err
	}

	if f.format == formatText {
		printInvitees(cmd.OutOrStdout(), report)
		return nil
	}

	codec, err := codecByName(f.format)
	if err != nil {
		return err
	}
	data, err := codec.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func printInvitees(w io.Writer, report *invite.Report) {
	fmt.Fprintln(w, "Invitees")
	for _, c := range report.Candidates {
		fmt.Fprintln(w, "  ===>")
		fmt.Fprintf(w, "    Company name: %s\n", c.CompanyName)
		fmt.Fprintf(w, "    Company address: %s\n", c.Address)
	}
}
