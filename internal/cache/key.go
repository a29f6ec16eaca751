// Package cache provides the per-domain cache stores and the cache key
// deriver for the listing search layer. Each listing domain owns an isolated
// namespace so evictions and outages never cross domains.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/tripdeck/listing-search/internal/domain"
)

// Namespace prefixes per domain. Identical canonical filters in different
// domains can never collide.
var searchPrefixes = map[domain.Domain]string{
	domain.DomainCars:    "car_search:",
	domain.DomainFlights: "flight_search:",
	domain.DomainHotels:  "hotel_search:",
}

// Detail key prefixes for single-listing fetches.
var detailPrefixes = map[domain.Domain]string{
	domain.DomainCars:    "car:",
	domain.DomainFlights: "flight:",
	domain.DomainHotels:  "hotel:",
}

// DeriveKey turns a search filter into a stable, domain-qualified cache key.
// Two logically identical filters hash identically regardless of how they
// were constructed; filters differing in any field hash differently with
// overwhelming probability. The digest is 128 bits of SHA-256 in hex.
func DeriveKey(d domain.Domain, filter any) (string, error) {
	canonical, err := Canonicalize(filter)
	if err != nil {
		return "", fmt.Errorf("derive cache key: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return searchPrefixes[d] + hex.EncodeToString(sum[:16]), nil
}

// DetailKey returns the cache key for a single-listing fetch.
func DetailKey(d domain.Domain, id string) string {
	return detailPrefixes[d] + id
}

// Canonicalize serializes a filter into a canonical JSON form: object keys
// emitted in sorted order, null members dropped, array order preserved, and
// numbers kept in their exact JSON representation. Absent optional fields
// and explicit nulls therefore serialize identically.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, decoded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeCanonical recursively writes the canonical form of a decoded JSON
// value.
func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k, member := range val {
			if member == nil {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(k))
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case []any:
		buf.WriteByte('[')
		for i, member := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, member); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case json.Number:
		buf.WriteString(val.String())

	case string:
		buf.WriteString(strconv.Quote(val))

	case bool:
		buf.WriteString(strconv.FormatBool(val))

	default:
		return fmt.Errorf("unsupported value type %T in filter", v)
	}
	return nil
}
