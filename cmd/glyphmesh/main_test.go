package main

import (
	"testing"

	"github.com/go-text/typesetting/language"
)

func TestReadRequest(t *testing.T) {
	req, err := readRequest("testdata/hello.gm")
	if err != nil {
		t.Fatalf("readRequest: %v", err)
	}
	if len(req.Fonts) != 2 {
		t.Errorf("Fonts: got %d, want 2", len(req.Fonts))
	}
	if req.Candidate.Family != "Go" {
		t.Errorf("Candidate: got %+v", req.Candidate)
	}
	if got := req.Families[language.Common]; len(got) != 1 || got[0] != "Go" {
		t.Errorf("Common families: got %v", got)
	}
	if err := req.Config.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReadRequestMissingFile(t *testing.T) {
	if _, err := readRequest("testdata/missing.gm"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
