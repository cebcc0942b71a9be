// Package geoip resolves viewer IP addresses to coarse locations for the
// per-view analytics rows. Lookups read a local MaxMind database and never
// touch the network.
package geoip

import (
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// Resolver answers country and city lookups for viewer IPs. The zero value
// resolves everything to empty strings, which the view recorder stores as
// unknown locations.
type Resolver struct {
	db *maxminddb.Reader
}

type record struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
}

// New opens the MaxMind database at path. Callers decide whether a missing
// database disables location lookups or aborts startup.
func New(path string) (*Resolver, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Resolver{db: db}, nil
}

// Lookup returns the ISO country code and English city name for ip. Unknown
// addresses, unparsable input and a resolver without a database all yield
// empty strings so a view is still recorded without a location.
func (r *Resolver) Lookup(ipStr string) (country, city string) {
	if r.db == nil || ipStr == "" {
		return "", ""
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "", ""
	}
	var rec record
	if err := r.db.Lookup(ip, &rec); err != nil {
		return "", ""
	}
	return rec.Country.ISOCode, rec.City.Names["en"]
}

func (r *Resolver) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
