package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeJSON(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  Envelope
		want string
	}{
		{
			name: "row",
			env:  Success(Script{ID: 1, Title: "A", Position: "1", Status: "active"}),
			want: `{"status":true,"data":{"id":1,"title":"A","position":"1","status":"active"}}`,
		},
		{
			name: "empty list keeps data",
			env:  Success([]Script{}),
			want: `{"status":true,"data":[]}`,
		},
		{
			name: "no data",
			env:  Success(nil),
			want: `{"status":true}`,
		},
		{
			name: "failure",
			env:  Failure("Entry not found"),
			want: `{"status":false,"message":"Entry not found"}`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.env)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}
