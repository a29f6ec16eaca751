package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/test/testutil"
)

func TestDeriveKeyIsDeterministic(t *testing.T) {
	filter := domain.CarFilter{
		Location: "Miami",
		MinPrice: testutil.Ptr(30.0),
		Category: "suv",
	}

	first, err := DeriveKey(domain.DomainCars, filter)
	require.NoError(t, err)

	second, err := DeriveKey(domain.DomainCars, filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDeriveKeyFieldOrderIndependent(t *testing.T) {
	// Two shapes with the same JSON members declared in a different order
	// must produce the same canonical key.
	type orderedA struct {
		Location string `json:"location"`
		Category string `json:"category"`
		Limit    int    `json:"limit"`
	}
	type orderedB struct {
		Limit    int    `json:"limit"`
		Category string `json:"category"`
		Location string `json:"location"`
	}

	keyA, err := DeriveKey(domain.DomainCars, orderedA{Location: "Miami", Category: "suv", Limit: 20})
	require.NoError(t, err)

	keyB, err := DeriveKey(domain.DomainCars, orderedB{Location: "Miami", Category: "suv", Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, keyA, keyB)
}

func TestDeriveKeyNullEqualsOmitted(t *testing.T) {
	withNull := map[string]interface{}{"location": "Miami", "minPrice": nil}
	without := map[string]interface{}{"location": "Miami"}

	keyA, err := DeriveKey(domain.DomainCars, withNull)
	require.NoError(t, err)

	keyB, err := DeriveKey(domain.DomainCars, without)
	require.NoError(t, err)

	assert.Equal(t, keyA, keyB)
}

func TestDeriveKeyDiffersPerFilter(t *testing.T) {
	base := domain.CarFilter{Location: "Miami"}

	variants := []domain.CarFilter{
		{Location: "Orlando"},
		{Location: "Miami", Category: "suv"},
		{Location: "Miami", MinPrice: testutil.Ptr(10.0)},
		{Location: "Miami", Pagination: domain.Pagination{Offset: 20}},
	}

	baseKey, err := DeriveKey(domain.DomainCars, base)
	require.NoError(t, err)

	for _, v := range variants {
		key, err := DeriveKey(domain.DomainCars, v)
		require.NoError(t, err)
		assert.NotEqual(t, baseKey, key, "filter %+v must not collide with the base filter", v)
	}
}

func TestDeriveKeyDomainPrefixes(t *testing.T) {
	filter := map[string]interface{}{"location": "Miami"}

	tests := []struct {
		domain domain.Domain
		prefix string
	}{
		{domain.DomainCars, "car_search:"},
		{domain.DomainFlights, "flight_search:"},
		{domain.DomainHotels, "hotel_search:"},
	}

	keys := make(map[string]bool)
	for _, tt := range tests {
		key, err := DeriveKey(tt.domain, filter)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, tt.prefix), "key %q should carry prefix %q", key, tt.prefix)

		// 128-bit digest in hex after the prefix.
		assert.Len(t, strings.TrimPrefix(key, tt.prefix), 32)

		keys[key] = true
	}

	assert.Len(t, keys, len(tests), "identical filters in different domains must never collide")
}

func TestDetailKey(t *testing.T) {
	assert.Equal(t, "car:abc-123", DetailKey(domain.DomainCars, "abc-123"))
	assert.Equal(t, "flight:f-9", DetailKey(domain.DomainFlights, "f-9"))
	assert.Equal(t, "hotel:h-1", DetailKey(domain.DomainHotels, "h-1"))
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{
			name: "keys sorted",
			in:   map[string]interface{}{"b": 1, "a": 2},
			want: `{"a":2,"b":1}`,
		},
		{
			name: "null members dropped",
			in:   map[string]interface{}{"a": nil, "b": "x"},
			want: `{"b":"x"}`,
		},
		{
			name: "array order preserved",
			in:   map[string]interface{}{"tags": []string{"z", "a"}},
			want: `{"tags":["z","a"]}`,
		},
		{
			name: "number representation preserved",
			in:   map[string]interface{}{"price": 45.50},
			want: `{"price":45.5}`,
		},
		{
			name: "nested objects canonicalized",
			in:   map[string]interface{}{"outer": map[string]interface{}{"z": true, "a": nil}},
			want: `{"outer":{"z":true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
