package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bradleyjkemp/cupaloy/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecord = map[string]string{
	"street":           "Кошкина 11",
	"apartment_number": "12 б.",
	"city":             "Москва",
	"state_province":   "",
	"postal_code":      "770000",
	"country":          "Russia",
}

// newTestAdapter connects an adapter to an in-process redis server
func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	adapter, err := NewAdapter(context.Background(), srv.Host(), srv.Port())
	require.NoError(t, err, "error creating new test adapter")
	t.Cleanup(func() { _ = adapter.Close() })

	return adapter, srv
}

func TestNewAdapter(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("secret")

	cases := []struct {
		error       bool
		description string
		opts        []RedisOptionFunc
	}{
		{
			description: "Should succeed with the right password",
			opts:        []RedisOptionFunc{WithPassword("secret"), WithDB(0)},
		},
		{
			description: "Should fail without a password",
			error:       true,
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			adapter, err := NewAdapter(context.Background(), srv.Host(), srv.Port(), c.opts...)
			if c.error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, adapter.Close())
		})
	}
}

func TestSetRecord(t *testing.T) {
	ctx := context.Background()
	adapter, srv := newTestAdapter(t)

	cases := []struct {
		error       bool
		description string
	}{
		{
			description: "Should succeed with valid write of a record",
		},
		{
			description: "Should fail if connection closed",
			error:       true,
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if c.error {
				adapter.client.Close()
			}
			err := adapter.SetRecord(ctx, "tel:+7-999-999-99-99", testRecord)
			if c.error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for field, value := range testRecord {
				assert.Equal(t, value, srv.HGet("tel:+7-999-999-99-99", field), field)
			}
		})
	}
}

func TestGetRecord(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestAdapter(t)
	require.NoError(t, adapter.SetRecord(ctx, "tel:+7-999-999-99-99", testRecord))

	cases := []struct {
		error       bool
		description string
	}{
		{
			description: "Should succeed with valid retrieval of a record",
		},
		{
			description: "Should fail if connection closed",
			error:       true,
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if c.error {
				adapter.client.Close()
			}
			record, err := adapter.GetRecord(ctx, "tel:+7-999-999-99-99")
			if c.error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			cupaloy.SnapshotT(t, record)
		})
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestAdapter(t)
	require.NoError(t, adapter.SetRecord(ctx, "tel:+7-999-999-99-99", testRecord))

	present, err := adapter.Exists(ctx, "tel:+7-999-999-99-99")
	require.NoError(t, err)
	assert.True(t, present)

	present, err = adapter.Exists(ctx, "tel:+7-900-000-00-00")
	require.NoError(t, err)
	assert.False(t, present)

	record, err := adapter.GetRecord(ctx, "tel:+7-900-000-00-00")
	require.NoError(t, err)
	assert.Empty(t, record)
}

func TestDeleteFields(t *testing.T) {
	ctx := context.Background()
	adapter, srv := newTestAdapter(t)
	require.NoError(t, adapter.SetRecord(ctx, "tel:+7-999-999-99-99", testRecord))

	fields, err := adapter.FieldNames(ctx, "tel:+7-999-999-99-99")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"street", "apartment_number", "city", "state_province", "postal_code", "country"}, fields)

	cases := []struct {
		error       bool
		description string
	}{
		{
			description: "Should succeed with valid deletion of a record",
		},
		{
			description: "Should fail if connection closed",
			error:       true,
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if c.error {
				adapter.client.Close()
			}
			err := adapter.DeleteFields(ctx, "tel:+7-999-999-99-99", fields...)
			if c.error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, srv.Exists("tel:+7-999-999-99-99"))
		})
	}
}

func TestDeleteFieldsNoFields(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	assert.NoError(t, adapter.DeleteFields(context.Background(), "tel:+7-999-999-99-99"))
}
