// Command replica runs the partner invite search and deep-clones documents.
//
//	replica invite --file partners.json
//	replica invite --file partners.yaml --radius 50 --format json
//	replica clone --file doc.json --format yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/replica"
	"github.com/zoobzio/replica/bson"
	"github.com/zoobzio/replica/json"
	"github.com/zoobzio/replica/msgpack"
	"github.com/zoobzio/replica/xml"
	"github.com/zoobzio/replica/yaml"
)

// formatText prints a human-readable summary instead of an encoding.
const formatText = "text"

var codecs = map[string]replica.Codec{
	"json":    json.NewIndented(),
	"yaml":    yaml.New(),
	"xml":     xml.New(),
	"msgpack": msgpack.New(),
	"bson":    bson.New(),
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "replica",
		Short:         "Deep-clone documents and select partner offices by distance",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newInviteCmd(), newCloneCmd())
	return root
}

// reportError prints err, with its code when it carries one.
func reportError(w io.Writer, err error) {
	var coded *replica.CodedError
	if errors.As(err, &coded) {
		fmt.Fprintf(w, "Error: %s\n", coded.Message)
		fmt.Fprintf(w, "ERR_CODE: %s\n", coded.Code)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func codecByName(name string) (replica.Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	return c, nil
}
