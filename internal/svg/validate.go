package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ValidationIssue is one failed document check.
type ValidationIssue struct {
	// Check names the failed check: "root", "namespace", "structure", or
	// "path-data".
	Check string `json:"check"`

	// Detail describes the failure.
	Detail string `json:"detail"`
}

// Error implements the error interface.
func (v ValidationIssue) Error() string {
	return fmt.Sprintf("%s: %s", v.Check, v.Detail)
}

// Validate checks an SVG document and returns every problem found.
//
// Checks: the root element is <svg>, the root carries the SVG namespace,
// the document is well-formed XML through its closing tag, and every d=
// attribute parses under the path-command grammar. A nil result means the
// document passed. Validate never fails with a single error; it always
// reports the full list.
func Validate(content string) []ValidationIssue {
	var issues []ValidationIssue

	dec := xml.NewDecoder(strings.NewReader(content))
	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			issues = append(issues, ValidationIssue{
				Check:  "structure",
				Detail: fmt.Sprintf("malformed XML: %v", err),
			})
			break
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !sawRoot {
			sawRoot = true
			if start.Name.Local != "svg" {
				issues = append(issues, ValidationIssue{
					Check:  "root",
					Detail: fmt.Sprintf("root element is <%s>, want <svg>", start.Name.Local),
				})
			}
			if start.Name.Space != Namespace {
				issues = append(issues, ValidationIssue{
					Check:  "namespace",
					Detail: fmt.Sprintf("root namespace is %q, want %q", start.Name.Space, Namespace),
				})
			}
			continue
		}

		if start.Name.Local != "path" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local != "d" {
				continue
			}
			if _, err := ParsePath(attr.Value); err != nil {
				issues = append(issues, ValidationIssue{
					Check:  "path-data",
					Detail: err.Error(),
				})
			}
		}
	}

	if !sawRoot && len(issues) == 0 {
		issues = append(issues, ValidationIssue{
			Check:  "root",
			Detail: "document has no root element",
		})
	}
	return issues
}
