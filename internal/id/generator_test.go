package id

import (
	"strings"
	"testing"
)

func TestGenerate_Prefix(t *testing.T) {
	for _, kind := range []Kind{Event, Request} {
		got := Generate(kind)
		if !strings.HasPrefix(got, string(kind)+"_") {
			t.Errorf("Generate(%s) = %q, missing prefix", kind, got)
		}
		if len(got) <= len(kind)+1 {
			t.Errorf("Generate(%s) = %q, empty body", kind, got)
		}
	}
}

func TestGenerate_KindsDiffer(t *testing.T) {
	if strings.HasPrefix(Generate(Event), string(Request)) {
		t.Error("event id carries request prefix")
	}
}
