package cli

import (
	"fmt"

	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/getmockd/httpvars/pkg/document"
	"github.com/spf13/cobra"
)

var (
	resolveRequestName string
	resolveLine        int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Print a request with its variables resolved",
	Long: `Print a request with its variables resolved.

Without --request or --line the first request in the file is used.
Placeholders that cannot be resolved are printed unchanged.`,
	Example: `  # Resolve the first request
  httpvars resolve api.http

  # Resolve a named request against the staging environment
  httpvars resolve api.http --request login --env staging

  # Resolve the request around line 12
  httpvars resolve api.http --line 12`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&resolveRequestName, "request", "r", "", "Name of the request to resolve")
	resolveCmd.Flags().IntVarP(&resolveLine, "line", "l", 0, "Resolve the request containing this line (1-based)")
	resolveCmd.MarkFlagsMutuallyExclusive("request", "line")
}

// resolveOutput is the JSON form of a resolved request.
type resolveOutput struct {
	File    string `json:"file"`
	Request string `json:"request,omitempty"`
	Line    int    `json:"line"`
	Text    string `json:"text"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}
	req, err := selectRequest(doc, resolveRequestName, resolveLine)
	if err != nil {
		return err
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	text := e.ResolveRequest(cmd.Context(), doc, req, nil)

	out := resolveOutput{File: doc.Path, Request: req.Name, Line: req.StartLine + 1, Text: text}
	return printResult(out, func() {
		output.Println(text)
	})
}

// selectRequest picks a request by name, by 1-based line, or the first one.
func selectRequest(doc *document.Document, name string, line int) (*document.Request, error) {
	switch {
	case name != "":
		if req, ok := doc.Request(name); ok {
			return req, nil
		}
		return nil, fmt.Errorf("%w: no request named %s in %s", ErrRequestNotFound, name, doc.Path)
	case line > 0:
		if req, ok := doc.RequestAt(line - 1); ok {
			return req, nil
		}
		return nil, fmt.Errorf("%w: no request at line %d in %s", ErrRequestNotFound, line, doc.Path)
	}
	if len(doc.Requests) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRequests, doc.Path)
	}
	return &doc.Requests[0], nil
}
