package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/getmockd/httpvars/pkg/cli/internal/parse"
	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/providers/request"
	"github.com/spf13/cobra"
)

var (
	recordRequestName     string
	recordStatus          int
	recordHeaders         []string
	recordBodyFile        string
	recordRequestHeaders  []string
	recordRequestBodyFile string
)

var recordCmd = &cobra.Command{
	Use:   "record <file>",
	Short: "Store a response for a named request",
	Long: `Store a response for a named request so that request variables such as
{{login.response.body.$.token}} resolve without sending it again.

Exchanges are kept in the history directory (see 'httpvars help config').`,
	Example: `  httpvars record api.http --request login --status 200 \
    --header 'Content-Type: application/json' --body-file login.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&recordRequestName, "request", "r", "", "Name of the request (required)")
	recordCmd.Flags().IntVar(&recordStatus, "status", http.StatusOK, "Response status code")
	recordCmd.Flags().StringArrayVarP(&recordHeaders, "header", "H", nil, "Response header as 'Name: value' (repeatable)")
	recordCmd.Flags().StringVar(&recordBodyFile, "body-file", "", "File containing the response body")
	recordCmd.Flags().StringArrayVar(&recordRequestHeaders, "request-header", nil, "Request header as 'Name: value' (repeatable)")
	recordCmd.Flags().StringVar(&recordRequestBodyFile, "request-body-file", "", "File containing the request body")
	_ = recordCmd.MarkFlagRequired("request")
}

// recordOutput is the JSON form of a recorded exchange.
type recordOutput struct {
	File     string            `json:"file"`
	Request  string            `json:"request"`
	Exchange *request.Exchange `json:"exchange"`
}

func runRecord(_ *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	resp, err := readMessage(recordHeaders, recordBodyFile)
	if err != nil {
		return err
	}
	req, err := readMessage(recordRequestHeaders, recordRequestBodyFile)
	if err != nil {
		return err
	}
	ex := &request.Exchange{StatusCode: recordStatus, Request: req, Response: resp}

	e, err := newEngine()
	if err != nil {
		return err
	}
	if err := e.Record(doc, recordRequestName, ex); err != nil {
		return err
	}

	return printResult(recordOutput{File: doc.Path, Request: recordRequestName, Exchange: ex}, func() {
		output.Printf("Recorded %s (%d)\n", recordRequestName, ex.StatusCode)
	})
}

func readMessage(headers []string, bodyFile string) (request.Message, error) {
	var msg request.Message
	if len(headers) > 0 {
		h, err := parse.Headers(headers)
		if err != nil {
			return msg, err
		}
		msg.Headers = h
	}
	if bodyFile != "" {
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return msg, fmt.Errorf("reading body: %w", err)
		}
		msg.Body = string(data)
	}
	return msg, nil
}
