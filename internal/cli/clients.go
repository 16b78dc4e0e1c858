package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/deppfellow/roundtrip/internal/client"
	"github.com/deppfellow/roundtrip/internal/lib/utils"
	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/spf13/cobra"
)

func uploadCmd() *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "upload <dest-url> <number>",
		Short: "Upload a value in the range [0..9999]",
		Long:  "Upload posts the value to the destination server's submit endpoint and prints its reply.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := client.DefaultConfig()
			cfg.Timeout = timeout

			reply, err := client.New(cfg).Upload(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	return c
}

func fetchCmd() *cobra.Command {
	var timeout time.Duration
	var asJSON bool

	c := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch the last uploaded value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := client.DefaultConfig()
			cfg.Timeout = timeout

			resp, raw, err := client.New(cfg).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return utils.PrintJSON(cmd.OutOrStdout(), raw)
			}
			printFetch(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	c.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON document")
	return c
}

func printFetch(w io.Writer, resp model.FetchResponse) {
	if resp.ErrorMessage == nil {
		fmt.Fprintf(w, "Previous value was [%d]\n", resp.InputValue)
		return
	}
	fmt.Fprintf(w, "Server reported an error: %s\n", quoteJSON(*resp.ErrorMessage))
}

// quoteJSON renders s as a JSON string literal. HTML characters stay as
// they are; control characters use \u escapes, which Go's %q would print as
// \x escapes instead.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
