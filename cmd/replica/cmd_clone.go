package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/replica"
	"github.com/zoobzio/replica/invite"
)

type cloneFlags struct {
	file   string
	format string
}

func newCloneCmd() *cobra.Command {
	f := &cloneFlags{}
	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Deep-clone a document and compare fingerprints",
		Long: `Decodes a document (JSON, YAML or msgpack, chosen by extension), deep-clones
it and prints the fingerprints of the source and the clone. With --format
other than text the clone is written encoded after the summary.

Examples:
  replica clone --file doc.json
  replica clone --file doc.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClone(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "document to clone")
	cmd.Flags().StringVar(&f.format, "format", formatText, "clone output format: text, json, yaml, xml, msgpack, bson")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runClone(cmd *cobra.Command, f *cloneFlags) error {
	codec, err := invite.CodecFor(f.file)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(f.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.file, err)
	}

	var doc any
	if err := codec.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", f.file, err)
	}

	cloned, err := replica.TryClone(cmd.Context(), doc)
	if err != nil {
		return err
	}

	srcPrint, err := replica.Fingerprint(doc)
	if err != nil {
		return err
	}
	clonePrint, err := replica.Fingerprint(cloned)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "kind: %s\n", replica.KindOf(doc))
	fmt.Fprintf(w, "source: %s\n", srcPrint)
	fmt.Fprintf(w, "clone:  %s\n", clonePrint)
	fmt.Fprintf(w, "match:  %t\n", srcPrint == clonePrint)

	if f.format == formatText {
		return nil
	}
	out, err := codecByName(f.format)
	if err != nil {
		return err
	}
	encoded, err := out.Marshal(cloned)
	if err != nil {
		return fmt.Errorf("encode clone: %w", err)
	}
	_, err = w.Write(encoded)
	return err
}
