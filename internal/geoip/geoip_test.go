package geoip

import (
	"testing"
)

func TestNew_MissingDatabase(t *testing.T) {
	if _, err := New("/nonexistent/viewers.mmdb"); err == nil {
		t.Fatal("expected an error for a missing database file")
	}
}

func TestLookup_WithoutDatabase(t *testing.T) {
	var r Resolver
	country, city := r.Lookup("8.8.8.8")
	if country != "" || city != "" {
		t.Errorf("expected empty results without a database, got country=%q city=%q", country, city)
	}
}

func TestLookup_UnparsableIP(t *testing.T) {
	var r Resolver
	country, city := r.Lookup("not-an-ip")
	if country != "" || city != "" {
		t.Errorf("expected empty results for bad input, got country=%q city=%q", country, city)
	}
}

func TestClose_WithoutDatabase(t *testing.T) {
	var r Resolver
	if err := r.Close(); err != nil {
		t.Errorf("expected no error closing an empty resolver, got %v", err)
	}
}
