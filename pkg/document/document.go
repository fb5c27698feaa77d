package document

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Document is a parsed request file.
type Document struct {
	// Path is the file the document was loaded from. Empty for in-memory documents.
	Path string

	// Text is the raw document text.
	Text string

	// Requests are the request blocks, in document order.
	Requests []Request

	// FileVariables are all @name = value definitions, in document order.
	FileVariables []FileVariable
}

// Request is a single request block delimited by ### lines.
type Request struct {
	// Name comes from a "# @name <id>" metadata line. Empty when unnamed.
	Name string

	// Title is the text following the ### delimiter that opened the block.
	Title string

	// Metadata holds every "# @key value" line of the block, including name.
	Metadata map[string]string

	// StartLine and EndLine bound the block (0-based, inclusive).
	StartLine int
	EndLine   int

	// Text is the request line, headers, and body with comments and
	// variable definitions removed.
	Text string
}

// FileVariable is an "@name = value" definition.
type FileVariable struct {
	Name  string
	Value string
	Line  int
}

var (
	delimiterRegex    = regexp.MustCompile(`^\s*#{3,}(.*)$`)
	fileVariableRegex = regexp.MustCompile(`^\s*@([^\s=]+)\s*=\s*(.*?)\s*$`)
	metadataRegex     = regexp.MustCompile(`^\s*(?:#|//)\s*@([\w-]+)(?:\s+(.*?))?\s*$`)
	commentRegex      = regexp.MustCompile(`^\s*(?:#|//)`)
)

// Load reads and parses the request file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return Parse(path, string(data)), nil
}

// Parse splits text into request blocks and collects file variables.
// Parsing never fails: lines that are not understood become request text.
func Parse(path, text string) *Document {
	doc := &Document{Path: path, Text: text}
	lines := splitLines(text)

	start := 0
	title := ""
	for i, line := range lines {
		if m := delimiterRegex.FindStringSubmatch(line); m != nil {
			doc.parseBlock(lines, start, i-1, title)
			start = i + 1
			title = strings.TrimSpace(m[1])
		}
	}
	doc.parseBlock(lines, start, len(lines)-1, title)
	return doc
}

// parseBlock handles lines[start..end]. The preamble (comments, metadata,
// variable definitions, blank lines) runs until the first other line, which
// is the request line. Comment lines are dropped from the header section
// only; the body is kept verbatim.
func (d *Document) parseBlock(lines []string, start, end int, title string) {
	if start > end {
		return
	}

	req := Request{
		Title:     title,
		Metadata:  make(map[string]string),
		StartLine: start,
		EndLine:   end,
	}

	var text []string
	inRequest, inBody := false, false
	for i := start; i <= end; i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if !inRequest {
			switch {
			case trimmed == "":
				continue
			case metadataRegex.MatchString(line):
				m := metadataRegex.FindStringSubmatch(line)
				req.Metadata[m[1]] = m[2]
				if m[1] == "name" && m[2] != "" {
					req.Name = m[2]
				}
				continue
			case commentRegex.MatchString(line):
				continue
			case fileVariableRegex.MatchString(line):
				m := fileVariableRegex.FindStringSubmatch(line)
				d.FileVariables = append(d.FileVariables, FileVariable{Name: m[1], Value: m[2], Line: i})
				continue
			}
			inRequest = true
		}

		if !inBody {
			if trimmed == "" {
				inBody = true
			} else if commentRegex.MatchString(line) {
				continue
			}
		}
		text = append(text, line)
	}

	if !inRequest {
		return
	}
	req.Text = strings.TrimRight(strings.Join(text, "\n"), "\n \t")
	d.Requests = append(d.Requests, req)
}

// Request returns the request with the given name.
func (d *Document) Request(name string) (*Request, bool) {
	for i := range d.Requests {
		if d.Requests[i].Name == name {
			return &d.Requests[i], true
		}
	}
	return nil, false
}

// RequestAt returns the request whose block contains the 0-based line.
func (d *Document) RequestAt(line int) (*Request, bool) {
	for i := range d.Requests {
		if line >= d.Requests[i].StartLine && line <= d.Requests[i].EndLine {
			return &d.Requests[i], true
		}
	}
	return nil, false
}

// FileVariable returns the value of a file variable. When a name is defined
// more than once the last definition wins.
func (d *Document) FileVariable(name string) (string, bool) {
	for i := len(d.FileVariables) - 1; i >= 0; i-- {
		if d.FileVariables[i].Name == name {
			return d.FileVariables[i].Value, true
		}
	}
	return "", false
}

// RequestNames returns the names of all named requests in document order.
func (d *Document) RequestNames() []string {
	var names []string
	for _, r := range d.Requests {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return names
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
