package svg

import "testing"

func hasIssue(issues []ValidationIssue, check string) bool {
	for _, i := range issues {
		if i.Check == check {
			return true
		}
	}
	return false
}

func TestValidate_WellFormed(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="8" height="8" viewBox="0 0 8 8">
<g fill="#ff0000">
<path d="M 0 0 L 4 0 L 4 4 Z"/>
</g>
</svg>
`
	if issues := Validate(content); len(issues) != 0 {
		t.Errorf("valid document rejected: %v", issues)
	}
}

func TestValidate_WrongRoot(t *testing.T) {
	issues := Validate(`<html xmlns="http://www.w3.org/2000/svg"></html>`)
	if !hasIssue(issues, "root") {
		t.Errorf("expected root issue, got %v", issues)
	}
}

func TestValidate_MissingNamespace(t *testing.T) {
	issues := Validate(`<svg width="8" height="8"></svg>`)
	if !hasIssue(issues, "namespace") {
		t.Errorf("expected namespace issue, got %v", issues)
	}
}

func TestValidate_UnclosedDocument(t *testing.T) {
	issues := Validate(`<svg xmlns="http://www.w3.org/2000/svg"><g fill="#000">`)
	if !hasIssue(issues, "structure") {
		t.Errorf("expected structure issue, got %v", issues)
	}
}

func TestValidate_BadPathData(t *testing.T) {
	content := `<svg xmlns="http://www.w3.org/2000/svg">
<path d="L 1 2"/>
<path d="M 0 0 X 9"/>
</svg>`
	issues := Validate(content)
	count := 0
	for _, i := range issues {
		if i.Check == "path-data" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 path-data issues, got %v", issues)
	}
}

func TestValidate_Empty(t *testing.T) {
	issues := Validate("")
	if !hasIssue(issues, "root") {
		t.Errorf("expected root issue for empty input, got %v", issues)
	}
}

func TestValidate_IssueError(t *testing.T) {
	issue := ValidationIssue{Check: "root", Detail: "boom"}
	if got := issue.Error(); got != "root: boom" {
		t.Errorf("Error() = %q", got)
	}
}
